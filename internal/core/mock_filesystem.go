package core

import (
	"context"
	"io/fs"
	"os"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
type MockFileSystem struct {
	mu       sync.RWMutex
	files    map[string][]byte
	perms    map[string]os.FileMode
	writes   map[string]int
	WriteErr map[string]error
	ReadErr  map[string]error
}

// NewMockFileSystem returns an empty in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:    make(map[string][]byte),
		perms:    make(map[string]os.FileMode),
		writes:   make(map[string]int),
		WriteErr: make(map[string]error),
		ReadErr:  make(map[string]error),
	}
}

// SetFile stores content at path without counting it as a write.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), data...)
	m.perms[path] = PermDefault
}

// DeleteFile removes path.
func (m *MockFileSystem) DeleteFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	delete(m.perms, path)
}

// GetFile returns the content stored at path.
func (m *MockFileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path]
	return data, ok
}

// Writes returns how many times path was written through WriteFile.
func (m *MockFileSystem) Writes(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[path]
}

func (m *MockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.ReadErr[path]; err != nil {
		return nil, err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.WriteErr[path]; err != nil {
		return err
	}
	m.files[path] = append([]byte(nil), data...)
	if _, ok := m.perms[path]; !ok {
		m.perms[path] = perm
	}
	m.writes[path]++
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return mockFileInfo{name: path, size: int64(len(data)), mode: m.perms[path]}, nil
}

var _ FileSystem = (*MockFileSystem)(nil)

type mockFileInfo struct {
	name string
	size int64
	mode os.FileMode
}

func (i mockFileInfo) Name() string       { return i.name }
func (i mockFileInfo) Size() int64        { return i.size }
func (i mockFileInfo) Mode() os.FileMode  { return i.mode }
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return false }
func (i mockFileInfo) Sys() any           { return nil }

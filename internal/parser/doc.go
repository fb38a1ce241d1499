// Package parser reads and writes named string fields in structured
// documents (JSON, YAML, TOML) and finds regex matches in free text. It
// backs the manifest store and the README/script drift check.
package parser

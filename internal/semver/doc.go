// Package semver parses and bumps the MAJOR.MINOR.PATCH extension version.
//
// The extension version is exactly three numeric components with no
// prefix, pre-release or build metadata. Formatter versions are compared
// loosely through CompareFormatter.
package semver

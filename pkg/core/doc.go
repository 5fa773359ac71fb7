// Package core defines the plain data shared between chainsql packages.
//
// It holds connection settings and placeholder styles so that adapters,
// dialects and configuration loading agree on them without importing each
// other.
//
// The Golden Rule: pkg/core imports only the standard library.
package core

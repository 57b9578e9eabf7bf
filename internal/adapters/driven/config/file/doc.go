// Package file provides the TOML-backed ConfigStore.
//
// Keys are exposed in dot notation ("backend.url") and written back as
// nested tables, so the file stays hand-editable.
package file

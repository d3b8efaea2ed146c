// Package file provides the TOML-backed driven.ConfigStore.
//
// The file is ~/.cvboard/config.toml by default. Keys are addressed with
// dot notation ("session.window_minutes") and written back as TOML tables.
package file

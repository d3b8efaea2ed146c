package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// EnvelopeVersion is the current persisted record version.
const EnvelopeVersion = 1

// Store keys used by the persistence and session layers.
const (
	KeyDocument      = "cv-data"
	KeyBackup        = "cv-data-backup"
	KeyAuthenticated = "cv-authenticated"
	KeyAuthTimestamp = "cv-auth-timestamp"
)

// Envelope is the versioned wrapper used for persisted and exported records.
type Envelope struct {
	// Data is the wrapped document.
	Data Document `json:"data"`

	// Timestamp is the write time in milliseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`

	// Version is the envelope schema version.
	Version int `json:"version"`

	// ExportedBy names the producing application on exported files.
	ExportedBy string `json:"exportedBy,omitempty"`
}

// IsEnvelope reports whether a decoded JSON object has the envelope shape:
// a data member and a non-zero timestamp.
func IsEnvelope(obj map[string]json.RawMessage) bool {
	data, ok := obj["data"]
	if !ok || isFalsy(data) {
		return false
	}
	ts, ok := obj["timestamp"]
	return ok && !isFalsy(ts)
}

// isFalsy matches JSON values that are absent in practice.
func isFalsy(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", "0", "false", `""`:
		return true
	default:
		return false
	}
}

// errNotObject is returned when a snapshot root is not a JSON object.
var errNotObject = errors.New("root is not a JSON object")

// DecodeSnapshot decodes either an enveloped or a bare document and checks
// the structural minimum of a CV: a non-empty string title and an array of
// sections. Failures wrap ErrInvalidImport.
func DecodeSnapshot(data []byte) (Document, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return Document{}, fmt.Errorf("%w: invalid JSON file", ErrInvalidImport)
	}
	if root == nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidImport, errNotObject)
	}

	body := data
	if inner, ok := root["data"]; ok && !isFalsy(inner) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(inner, &obj); err == nil && obj != nil {
			root = obj
			body = inner
		}
	}

	var title string
	if err := json.Unmarshal(root["title"], &title); err != nil || title == "" {
		return Document{}, fmt.Errorf("%w: missing title or sections", ErrInvalidImport)
	}
	var sections []json.RawMessage
	raw, ok := root["sections"]
	if !ok || json.Unmarshal(raw, &sections) != nil || sections == nil {
		return Document{}, fmt.Errorf("%w: missing title or sections", ErrInvalidImport)
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return doc, nil
}

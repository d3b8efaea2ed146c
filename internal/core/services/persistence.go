package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driven"
	"github.com/custodia-labs/cvboard/internal/core/ports/driving"
	"github.com/custodia-labs/cvboard/internal/logger"
)

// Ensure PersistenceService implements the interface.
var _ driving.PersistenceService = (*PersistenceService)(nil)

// PersistenceService saves the CV under a primary key, keeping the
// previous record under a backup key. Reads migrate bare documents to the
// envelope format and fall back to the backup when the primary record is
// unreadable.
type PersistenceService struct {
	store      driven.KeyValueStore
	now        func() time.Time
	exportedBy string
}

// PersistenceOption configures a PersistenceService.
type PersistenceOption func(*PersistenceService)

// WithPersistenceClock overrides the clock used for envelope timestamps.
func WithPersistenceClock(now func() time.Time) PersistenceOption {
	return func(s *PersistenceService) {
		s.now = now
	}
}

// WithExportedBy sets the producer name written into exported files.
func WithExportedBy(name string) PersistenceOption {
	return func(s *PersistenceService) {
		s.exportedBy = name
	}
}

// NewPersistenceService creates a persistence service over store.
func NewPersistenceService(store driven.KeyValueStore, opts ...PersistenceOption) *PersistenceService {
	s := &PersistenceService{
		store:      store,
		now:        time.Now,
		exportedBy: domain.DefaultExportedBy,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save copies the current primary record to the backup key, then writes
// doc in a fresh envelope. Any store failure is logged and reported as
// false.
func (s *PersistenceService) Save(ctx context.Context, doc domain.Document) bool {
	payload, err := json.Marshal(domain.Envelope{
		Data:      doc,
		Timestamp: s.now().UnixMilli(),
		Version:   domain.EnvelopeVersion,
	})
	if err != nil {
		logger.Error("save: encoding document: %v", err)
		return false
	}

	current, ok, err := s.store.Get(ctx, domain.KeyDocument)
	if err != nil {
		logger.Error("save: reading current record: %v", err)
		return false
	}
	if ok {
		if err := s.store.Set(ctx, domain.KeyBackup, current); err != nil {
			logger.Error("save: writing backup: %v", err)
			return false
		}
	}

	if err := s.store.Set(ctx, domain.KeyDocument, string(payload)); err != nil {
		logger.Error("save: writing record: %v", err)
		return false
	}

	logger.Debug("saved document %q (%d sections)", doc.Title, len(doc.Sections))
	return true
}

// Load returns the stored document. A bare document from an older version
// is returned as-is and rewritten in envelope form. When the primary
// record cannot be read or parsed the backup is tried instead.
func (s *PersistenceService) Load(ctx context.Context) (*domain.Document, bool) {
	raw, ok, err := s.store.Get(ctx, domain.KeyDocument)
	if err != nil {
		logger.Warn("load: reading record: %v", err)
		return s.loadBackup(ctx)
	}
	if !ok {
		return nil, false
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil || obj == nil {
		logger.Warn("load: record is not a JSON object, trying backup")
		return s.loadBackup(ctx)
	}

	if domain.IsEnvelope(obj) {
		var env domain.Envelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			logger.Warn("load: decoding envelope: %v", err)
			return s.loadBackup(ctx)
		}
		return &env.Data, true
	}

	var doc domain.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		logger.Warn("load: decoding document: %v", err)
		return s.loadBackup(ctx)
	}
	logger.Info("migrating stored document to envelope v%d", domain.EnvelopeVersion)
	s.Save(ctx, doc)
	return &doc, true
}

// loadBackup reads the backup record, enveloped or bare.
func (s *PersistenceService) loadBackup(ctx context.Context) (*domain.Document, bool) {
	raw, ok, err := s.store.Get(ctx, domain.KeyBackup)
	if err != nil {
		logger.Error("load: reading backup: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil || obj == nil {
		logger.Error("load: backup is not a JSON object")
		return nil, false
	}

	body := []byte(raw)
	if inner, ok := obj["data"]; ok && string(inner) != "null" {
		body = inner
	}

	var doc domain.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		logger.Error("load: decoding backup: %v", err)
		return nil, false
	}
	logger.Warn("loaded document from backup")
	return &doc, true
}

// Export writes doc to w as an indented envelope tagged with the producer.
func (s *PersistenceService) Export(_ context.Context, w io.Writer, doc domain.Document) error {
	data, err := json.MarshalIndent(domain.Envelope{
		Data:       doc,
		Timestamp:  s.now().UnixMilli(),
		Version:    domain.EnvelopeVersion,
		ExportedBy: s.exportedBy,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// ExportFilename returns the suggested name for an export written now.
func (s *PersistenceService) ExportFilename() string {
	return fmt.Sprintf("cv-backup-%s%s", s.now().UTC().Format("2006-01-02"), domain.DefaultExportExtension)
}

// Import reads a snapshot from r. Nothing is written to the store; the
// caller decides whether to adopt the result.
func (s *PersistenceService) Import(_ context.Context, r io.Reader) (domain.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: reading file: %v", domain.ErrInvalidImport, err)
	}
	doc, err := domain.DecodeSnapshot(data)
	if err != nil {
		return domain.Document{}, err
	}
	logger.Debug("imported document %q (%d sections)", doc.Title, len(doc.Sections))
	return doc, nil
}

// LastSaved returns the timestamp of the stored envelope. The boolean is
// false when nothing is stored or the record predates envelopes.
func (s *PersistenceService) LastSaved(ctx context.Context) (time.Time, bool) {
	raw, ok, err := s.store.Get(ctx, domain.KeyDocument)
	if err != nil || !ok {
		return time.Time{}, false
	}
	var head struct {
		Timestamp int64 `json:"timestamp"`
	}
	if err := json.Unmarshal([]byte(raw), &head); err != nil || head.Timestamp == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(head.Timestamp), true
}

// Clear removes the primary and backup records.
func (s *PersistenceService) Clear(ctx context.Context) bool {
	if err := s.store.Delete(ctx, domain.KeyDocument, domain.KeyBackup); err != nil {
		logger.Error("clear: %v", err)
		return false
	}
	return true
}

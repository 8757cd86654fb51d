package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"caseapi/internal/annotator"
	"caseapi/internal/catalog"
	"caseapi/internal/lifecycle"
	"caseapi/internal/model"
	"caseapi/internal/query"
	"caseapi/internal/report"
	"caseapi/internal/storage"
)

var (
	ErrIDRequired   = errors.New("id is required")
	ErrNameRequired = errors.New("name is required")
	ErrNotFound     = errors.New("record not found")
	ErrReaderNil    = errors.New("reader is nil")
	// ErrTransfer wraps ingestion failures: the upload never reached
	// storage, so no record was created.
	ErrTransfer     = errors.New("evidence transfer failed")
	ErrNoAssessment = errors.New("no assessment available yet")
)

// IngestInput carries the declared metadata for an upload.
type IngestInput struct {
	Filename    string
	MediaType   string
	Category    string
	Importance  string
	Tags        []string
	Description string
	ContentType string
	Size        int64
}

// EvidenceListResult is the service-level DTO for a filtered catalog view.
type EvidenceListResult struct {
	Items []model.EvidenceRecord `json:"data"`
	Total int                    `json:"total"`
}

// EvidenceService defines the use cases for the evidence catalog.
type EvidenceService interface {
	// Ingest streams the content to object storage and creates the record
	// in the uploading state; processing starts once the transfer lands.
	Ingest(ctx context.Context, r io.Reader, in IngestInput) (*model.EvidenceRecord, error)

	// List returns the records matching the criteria, in catalog order.
	List(ctx context.Context, c query.Criteria) (*EvidenceListResult, error)

	// Get returns a single record by its ID.
	Get(ctx context.Context, id string) (*model.EvidenceRecord, error)

	// Categories returns the distinct category labels currently present.
	Categories(ctx context.Context) ([]string, error)

	// Delete removes the record and its stored object, cancelling any
	// in-flight annotation. Deleting an absent id succeeds.
	Delete(ctx context.Context, id string) error

	// Retry re-runs annotation for a record in the error state.
	Retry(ctx context.Context, id string) error

	// DownloadURL returns a time-limited link to the stored object.
	DownloadURL(ctx context.Context, id string) (string, error)

	// Metrics aggregates the current snapshot with external case scores.
	Metrics(ctx context.Context) (report.Metrics, error)

	// Assess runs a whole-case assessment and retains the result.
	Assess(ctx context.Context) (*annotator.Assessment, error)

	// Assessment returns the latest retained assessment.
	Assessment(ctx context.Context) (*annotator.Assessment, error)
}

// evidenceService is the concrete implementation of EvidenceService.
type evidenceService struct {
	store     *catalog.Store[model.EvidenceRecord]
	objects   storage.Storage
	lifecycle *lifecycle.Manager
	assessor  annotator.Assessor

	mu     sync.RWMutex
	latest *annotator.Assessment
}

// NewEvidenceService constructs an EvidenceService around an owned store.
func NewEvidenceService(store *catalog.Store[model.EvidenceRecord], objects storage.Storage, lm *lifecycle.Manager, assessor annotator.Assessor) EvidenceService {
	return &evidenceService{
		store:     store,
		objects:   objects,
		lifecycle: lm,
		assessor:  assessor,
	}
}

func (s *evidenceService) Ingest(ctx context.Context, r io.Reader, in IngestInput) (*model.EvidenceRecord, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if in.Filename == "" {
		return nil, ErrNameRequired
	}
	mediaType, err := model.ParseMediaType(in.MediaType)
	if err != nil {
		return nil, err
	}
	importance := model.ImportanceMedium
	if in.Importance != "" {
		if importance, err = model.ParseImportance(in.Importance); err != nil {
			return nil, err
		}
	}

	id := uuid.New().String()
	key := filepath.ToSlash(filepath.Join("evidence", id+filepath.Ext(in.Filename)))

	objInfo, err := s.objects.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		// Transfer error: the record is never created.
		return nil, fmt.Errorf("%w: %v", ErrTransfer, err)
	}

	rec := model.EvidenceRecord{
		ID:          id,
		Name:        in.Filename,
		MediaType:   mediaType,
		Category:    in.Category,
		Tags:        model.NormalizeTags(in.Tags),
		Importance:  importance,
		UploadedAt:  time.Now().UTC(),
		SizeBytes:   objInfo.Size,
		State:       model.StateUploading,
		Description: in.Description,
		StoragePath: objInfo.Key,
	}
	if err := s.store.Add(rec); err != nil {
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("catalog add failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("catalog add failed: %w", err)
	}

	// The Put above is the whole transfer; processing starts right away.
	if err := s.lifecycle.Begin(ctx, id); err != nil {
		return nil, fmt.Errorf("begin processing: %w", err)
	}

	stored, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// List runs the query engine over a fresh snapshot. Recomputed per call;
// results are never cached or incrementally patched.
func (s *evidenceService) List(ctx context.Context, c query.Criteria) (*EvidenceListResult, error) {
	items := query.Collect(s.store.Snapshot(), c)
	return &EvidenceListResult{Items: items, Total: len(items)}, nil
}

func (s *evidenceService) Get(ctx context.Context, id string) (*model.EvidenceRecord, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *evidenceService) Categories(ctx context.Context) ([]string, error) {
	return query.Categories(s.store.Snapshot()), nil
}

func (s *evidenceService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	rec, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			// Idempotent delete: absent is success.
			return nil
		}
		return err
	}

	// Cancel first so a late annotation callback cannot land mid-delete.
	s.lifecycle.Cancel(id)

	// Seeded records carry no stored object.
	if rec.StoragePath != "" {
		if err := s.objects.Delete(ctx, rec.StoragePath); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}
	s.store.Remove(id)
	return nil
}

func (s *evidenceService) Retry(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	err := s.lifecycle.Retry(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *evidenceService) DownloadURL(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrIDRequired
	}
	rec, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if rec.StoragePath == "" {
		return "", ErrNotFound
	}
	return s.objects.PresignGet(ctx, rec.StoragePath, 15*time.Minute)
}

func (s *evidenceService) Metrics(ctx context.Context) (report.Metrics, error) {
	snap := s.store.Snapshot()
	ext := report.External{
		DaysActive: daysActive(snap, time.Now().UTC()),
	}
	s.mu.RLock()
	if s.latest != nil {
		ext.CaseStrength = s.latest.CaseStrength
		ext.PriorityActions = len(s.latest.RecommendedActions)
	}
	s.mu.RUnlock()

	return report.Aggregate(snap, ext), nil
}

// daysActive measures case age from the earliest upload in the catalog, so
// the figure survives service restarts. An empty catalog reads zero.
func daysActive(snapshot []model.EvidenceRecord, now time.Time) int {
	var oldest time.Time
	for _, rec := range snapshot {
		if rec.UploadedAt.IsZero() {
			continue
		}
		if oldest.IsZero() || rec.UploadedAt.Before(oldest) {
			oldest = rec.UploadedAt
		}
	}
	if oldest.IsZero() || oldest.After(now) {
		return 0
	}
	return int(now.Sub(oldest).Hours() / 24)
}

func (s *evidenceService) Assess(ctx context.Context) (*annotator.Assessment, error) {
	result, err := s.assessor.Assess(ctx, s.store.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("assess case: %w", err)
	}
	s.mu.Lock()
	s.latest = &result
	s.mu.Unlock()
	return &result, nil
}

func (s *evidenceService) Assessment(ctx context.Context) (*annotator.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, ErrNoAssessment
	}
	out := *s.latest
	return &out, nil
}

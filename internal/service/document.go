package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"caseapi/internal/catalog"
	"caseapi/internal/model"
)

var (
	ErrTitleRequired = errors.New("title is required")
	// ErrStatusRegression reports a backwards document status change; the
	// workflow only moves forward.
	ErrStatusRegression = errors.New("document status cannot move backwards")
)

// DocumentInput carries the fields for drafting a new document.
type DocumentInput struct {
	Title        string
	DocumentType string
	Description  string
	Importance   string
	SizeBytes    int64
}

// DocumentPatch is a partial content update; nil fields are left untouched.
// Any applied patch bumps the minor version and the modified timestamp.
type DocumentPatch struct {
	Title        *string
	DocumentType *string
	Description  *string
	Importance   *string
	SizeBytes    *int64
}

// DocumentFilter narrows and pages a library listing.
type DocumentFilter struct {
	Status string
	Limit  int
	Offset int
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.DocumentRecord `json:"data"`
	Total int                    `json:"total"`
}

// DocumentService defines the use cases for the generated-document library.
type DocumentService interface {
	// Create drafts a new document at the initial version.
	Create(ctx context.Context, in DocumentInput) (*model.DocumentRecord, error)

	// List returns documents, optionally restricted to one status, using
	// limit/offset and a total count over the filtered set.
	List(ctx context.Context, f DocumentFilter) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.DocumentRecord, error)

	// Update applies a content patch, bumping the minor version.
	Update(ctx context.Context, id string, patch DocumentPatch) (*model.DocumentRecord, error)

	// SetStatus advances the workflow status; regressions are rejected.
	// Approval bumps the major version.
	SetStatus(ctx context.Context, id string, status model.DocumentStatus) (*model.DocumentRecord, error)

	// Delete removes a document; absent ids succeed.
	Delete(ctx context.Context, id string) error
}

// documentService is the concrete implementation of DocumentService.
type documentService struct {
	store *catalog.Store[model.DocumentRecord]
}

// NewDocumentService constructs a DocumentService around an owned store.
func NewDocumentService(store *catalog.Store[model.DocumentRecord]) DocumentService {
	return &documentService{store: store}
}

func (s *documentService) Create(ctx context.Context, in DocumentInput) (*model.DocumentRecord, error) {
	if in.Title == "" {
		return nil, ErrTitleRequired
	}
	importance := model.ImportanceMedium
	if in.Importance != "" {
		var err error
		if importance, err = model.ParseImportance(in.Importance); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	doc := model.DocumentRecord{
		ID:           uuid.New().String(),
		Title:        in.Title,
		DocumentType: in.DocumentType,
		Description:  in.Description,
		Status:       model.StatusDraft,
		Version:      model.InitialVersion,
		CreatedAt:    now,
		ModifiedAt:   now,
		Importance:   importance,
		SizeBytes:    in.SizeBytes,
	}
	if err := s.store.Add(doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *documentService) List(ctx context.Context, f DocumentFilter) (*DocumentListResult, error) {
	if f.Status != "" {
		if _, err := model.ParseDocumentStatus(f.Status); err != nil {
			return nil, err
		}
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	snap := s.store.Snapshot()
	filtered := make([]model.DocumentRecord, 0, len(snap))
	for _, doc := range snap {
		if f.Status != "" && string(doc.Status) != f.Status {
			continue
		}
		filtered = append(filtered, doc)
	}

	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return &DocumentListResult{Items: filtered[offset:end], Total: total}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.DocumentRecord, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s *documentService) Update(ctx context.Context, id string, patch DocumentPatch) (*model.DocumentRecord, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	var importance model.Importance
	if patch.Importance != nil {
		var err error
		if importance, err = model.ParseImportance(*patch.Importance); err != nil {
			return nil, err
		}
	}

	err := s.store.Update(id, func(doc *model.DocumentRecord) error {
		if patch.Title != nil {
			if *patch.Title == "" {
				return ErrTitleRequired
			}
			doc.Title = *patch.Title
		}
		if patch.DocumentType != nil {
			doc.DocumentType = *patch.DocumentType
		}
		if patch.Description != nil {
			doc.Description = *patch.Description
		}
		if patch.Importance != nil {
			doc.Importance = importance
		}
		if patch.SizeBytes != nil {
			doc.SizeBytes = *patch.SizeBytes
		}
		doc.Version = model.BumpMinor(doc.Version)
		doc.ModifiedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	doc, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *documentService) SetStatus(ctx context.Context, id string, status model.DocumentStatus) (*model.DocumentRecord, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	err := s.store.Update(id, func(doc *model.DocumentRecord) error {
		if status.Rank() <= doc.Status.Rank() {
			return ErrStatusRegression
		}
		if status == model.StatusApproved {
			doc.Version = model.BumpMajor(doc.Version)
		}
		doc.Status = status
		doc.ModifiedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	doc, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	s.store.Remove(id)
	return nil
}

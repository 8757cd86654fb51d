package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"caseapi/internal/annotator"
	annotatorMocks "caseapi/internal/annotator/mocks"
	"caseapi/internal/catalog"
	"caseapi/internal/lifecycle"
	"caseapi/internal/model"
	"caseapi/internal/query"
	"caseapi/internal/storage"
	storeMocks "caseapi/internal/storage/mocks"
)

type evidenceFixture struct {
	svc      EvidenceService
	store    *catalog.Store[model.EvidenceRecord]
	objects  *storeMocks.MockStorage
	annot    *annotatorMocks.MockAnnotator
	assessor *annotatorMocks.MockAssessor
	mgr      *lifecycle.Manager
}

func newEvidenceFixture(t *testing.T, seed ...model.EvidenceRecord) *evidenceFixture {
	t.Helper()
	store, err := catalog.NewStore(seed...)
	require.NoError(t, err)

	objects := new(storeMocks.MockStorage)
	annot := new(annotatorMocks.MockAnnotator)
	assessor := new(annotatorMocks.MockAssessor)
	mgr := lifecycle.NewManager(store, annot, time.Second)

	return &evidenceFixture{
		svc:      NewEvidenceService(store, objects, mgr, assessor),
		store:    store,
		objects:  objects,
		annot:    annot,
		assessor: assessor,
		mgr:      mgr,
	}
}

func TestEvidenceIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		f := newEvidenceFixture(t)
		r := strings.NewReader("pdf bytes")

		f.objects.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "evidence/") && strings.HasSuffix(key, ".pdf")
		}), r, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.Size == 9 && opt.Metadata["original-filename"] == "incident_report_01.pdf"
		})).Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
			return storage.ObjectInfo{Key: key, Size: opt.Size}
		}, nil)
		f.annot.On("Annotate", mock.Anything, mock.Anything).Return("contains incident details", nil).Once()

		rec, err := f.svc.Ingest(ctx, r, IngestInput{
			Filename:    "incident_report_01.pdf",
			MediaType:   "document",
			Category:    "Reports",
			Importance:  "critical",
			Tags:        []string{"incident", "workplace", "incident"},
			ContentType: "application/pdf",
			Size:        9,
		})
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "incident_report_01.pdf", rec.Name)
		assert.Equal(t, model.MediaDocument, rec.MediaType)
		assert.Equal(t, []string{"incident", "workplace"}, rec.Tags, "duplicate tags collapse")
		assert.Equal(t, model.StateProcessing, rec.State, "transfer completed, processing started")
		assert.False(t, rec.UploadedAt.IsZero())

		f.mgr.Wait()
		got, err := f.svc.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StateCompleted, got.State)
		assert.Equal(t, "contains incident details", got.Annotation)
		f.objects.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		f := newEvidenceFixture(t)
		_, err := f.svc.Ingest(ctx, nil, IngestInput{Filename: "x.pdf", MediaType: "document"})
		assert.ErrorIs(t, err, ErrReaderNil)
	})

	t.Run("missing filename", func(t *testing.T) {
		f := newEvidenceFixture(t)
		_, err := f.svc.Ingest(ctx, strings.NewReader("x"), IngestInput{MediaType: "document"})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("unknown media type", func(t *testing.T) {
		f := newEvidenceFixture(t)
		_, err := f.svc.Ingest(ctx, strings.NewReader("x"), IngestInput{Filename: "x.xls", MediaType: "spreadsheet"})
		assert.Error(t, err)
	})

	t.Run("transfer error creates no record", func(t *testing.T) {
		f := newEvidenceFixture(t)
		r := strings.NewReader("x")
		f.objects.On("Put", ctx, mock.Anything, r, mock.Anything).
			Return(storage.ObjectInfo{}, assert.AnError)

		_, err := f.svc.Ingest(ctx, r, IngestInput{Filename: "x.jpg", MediaType: "image"})
		assert.ErrorIs(t, err, ErrTransfer)
		assert.Equal(t, 0, f.store.Len())
	})
}

func TestEvidenceList(t *testing.T) {
	ctx := context.Background()
	f := newEvidenceFixture(t,
		model.EvidenceRecord{ID: "1", Name: "incident_report_01.pdf", MediaType: model.MediaDocument, Tags: []string{"incident", "workplace"}, State: model.StateCompleted},
		model.EvidenceRecord{ID: "2", Name: "photo.jpg", MediaType: model.MediaImage, Tags: []string{"workplace"}, State: model.StateCompleted},
	)

	res, err := f.svc.List(ctx, query.Criteria{Text: "workplace"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	res, err = f.svc.List(ctx, query.Criteria{MediaType: "image"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "2", res.Items[0].ID)

	res, err = f.svc.List(ctx, query.Criteria{Text: "incident", MediaType: "image"})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items, "empty result is an explicit empty list")
}

func TestEvidenceGet(t *testing.T) {
	ctx := context.Background()
	f := newEvidenceFixture(t, model.EvidenceRecord{ID: "1", Name: "a.pdf", MediaType: model.MediaDocument, State: model.StateCompleted})

	got, err := f.svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", got.Name)

	_, err = f.svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrIDRequired)
}

func TestEvidenceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes object and record", func(t *testing.T) {
		f := newEvidenceFixture(t, model.EvidenceRecord{
			ID: "1", Name: "a.pdf", MediaType: model.MediaDocument,
			State: model.StateCompleted, StoragePath: "evidence/1.pdf",
		})
		f.objects.On("Delete", ctx, "evidence/1.pdf").Return(nil).Once()

		require.NoError(t, f.svc.Delete(ctx, "1"))
		assert.Equal(t, 0, f.store.Len())

		res, err := f.svc.List(ctx, query.Criteria{})
		require.NoError(t, err)
		assert.Empty(t, res.Items, "no ghost entries after removal")

		// Second delete is idempotent and touches nothing.
		require.NoError(t, f.svc.Delete(ctx, "1"))
		f.objects.AssertNumberOfCalls(t, "Delete", 1)
	})

	t.Run("absent id succeeds", func(t *testing.T) {
		f := newEvidenceFixture(t)
		assert.NoError(t, f.svc.Delete(ctx, "never-existed"))
	})

	t.Run("storage failure keeps record", func(t *testing.T) {
		f := newEvidenceFixture(t, model.EvidenceRecord{
			ID: "1", Name: "a.pdf", MediaType: model.MediaDocument,
			State: model.StateCompleted, StoragePath: "evidence/1.pdf",
		})
		f.objects.On("Delete", ctx, "evidence/1.pdf").Return(assert.AnError)

		err := f.svc.Delete(ctx, "1")
		assert.Error(t, err)
		assert.Equal(t, 1, f.store.Len())
	})

	t.Run("seeded record without object", func(t *testing.T) {
		f := newEvidenceFixture(t, model.EvidenceRecord{ID: "1", Name: "a.pdf", MediaType: model.MediaDocument, State: model.StateCompleted})
		require.NoError(t, f.svc.Delete(ctx, "1"))
		f.objects.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestEvidenceRetry(t *testing.T) {
	ctx := context.Background()

	f := newEvidenceFixture(t, model.EvidenceRecord{
		ID: "1", Name: "a.mp4", MediaType: model.MediaVideo,
		State: model.StateError, Annotation: "transcoding failed",
	})
	f.annot.On("Annotate", mock.Anything, mock.Anything).Return("key frames extracted", nil).Once()

	require.NoError(t, f.svc.Retry(ctx, "1"))
	f.mgr.Wait()

	got, err := f.svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, model.StateCompleted, got.State)
	assert.Equal(t, "key frames extracted", got.Annotation)

	err = f.svc.Retry(ctx, "1")
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition, "retry only applies to the error state")

	err = f.svc.Retry(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEvidenceDownloadURL(t *testing.T) {
	ctx := context.Background()
	f := newEvidenceFixture(t, model.EvidenceRecord{
		ID: "1", Name: "a.pdf", MediaType: model.MediaDocument,
		State: model.StateCompleted, StoragePath: "evidence/1.pdf",
	})
	f.objects.On("PresignGet", ctx, "evidence/1.pdf", mock.Anything).Return("https://bucket/signed", nil)

	url, err := f.svc.DownloadURL(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "https://bucket/signed", url)

	_, err = f.svc.DownloadURL(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEvidenceMetricsAndAssessment(t *testing.T) {
	ctx := context.Background()
	f := newEvidenceFixture(t,
		model.EvidenceRecord{ID: "1", Name: "a.pdf", MediaType: model.MediaDocument, State: model.StateCompleted},
		model.EvidenceRecord{ID: "2", Name: "b.jpg", MediaType: model.MediaImage, State: model.StateProcessing},
	)

	_, err := f.svc.Assessment(ctx)
	assert.ErrorIs(t, err, ErrNoAssessment)

	m, err := f.svc.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Total)
	assert.Equal(t, 1, m.ByMediaType[model.MediaDocument])
	assert.Equal(t, 1, m.ByState[model.StateProcessing])
	assert.Equal(t, 0, m.External.CaseStrength, "no assessment yet")

	f.assessor.On("Assess", ctx, mock.Anything).Return(annotator.Assessment{
		CaseStrength: 78,
		RiskLevel:    annotator.RiskLow,
	}, nil)

	got, err := f.svc.Assess(ctx)
	require.NoError(t, err)
	assert.Equal(t, 78, got.CaseStrength)

	latest, err := f.svc.Assessment(ctx)
	require.NoError(t, err)
	assert.Equal(t, 78, latest.CaseStrength)

	m, err = f.svc.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 78, m.External.CaseStrength, "assessment score passes through")
}

func TestEvidenceDaysActiveFromOldestUpload(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	// Case age is anchored on the catalog, not on process uptime: a fresh
	// service over a six-week-old catalog still reports 42 days.
	f := newEvidenceFixture(t,
		model.EvidenceRecord{ID: "1", Name: "a.pdf", MediaType: model.MediaDocument, UploadedAt: now.AddDate(0, 0, -42)},
		model.EvidenceRecord{ID: "2", Name: "b.jpg", MediaType: model.MediaImage, UploadedAt: now.AddDate(0, 0, -3)},
	)

	m, err := f.svc.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, m.External.DaysActive)

	empty := newEvidenceFixture(t)
	m, err = empty.svc.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, m.External.DaysActive)
}

package mocks

import (
	"context"
	"io"

	"caseapi/internal/annotator"
	"caseapi/internal/model"
	"caseapi/internal/query"
	"caseapi/internal/report"
	"caseapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockEvidenceService struct {
	mock.Mock
}

func (m *MockEvidenceService) Ingest(ctx context.Context, r io.Reader, in service.IngestInput) (*model.EvidenceRecord, error) {
	args := m.Called(ctx, r, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EvidenceRecord), args.Error(1)
}

func (m *MockEvidenceService) List(ctx context.Context, c query.Criteria) (*service.EvidenceListResult, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EvidenceListResult), args.Error(1)
}

func (m *MockEvidenceService) Get(ctx context.Context, id string) (*model.EvidenceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EvidenceRecord), args.Error(1)
}

func (m *MockEvidenceService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockEvidenceService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEvidenceService) Retry(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEvidenceService) DownloadURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockEvidenceService) Metrics(ctx context.Context) (report.Metrics, error) {
	args := m.Called(ctx)
	return args.Get(0).(report.Metrics), args.Error(1)
}

func (m *MockEvidenceService) Assess(ctx context.Context) (*annotator.Assessment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*annotator.Assessment), args.Error(1)
}

func (m *MockEvidenceService) Assessment(ctx context.Context) (*annotator.Assessment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*annotator.Assessment), args.Error(1)
}

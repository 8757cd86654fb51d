package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"caseapi/internal/annotator"
	"caseapi/internal/model"
)

type MockAnnotator struct {
	mock.Mock
}

func (m *MockAnnotator) Annotate(ctx context.Context, rec model.EvidenceRecord) (string, error) {
	args := m.Called(ctx, rec)
	if f, ok := args.Get(0).(func(context.Context, model.EvidenceRecord) (string, error)); ok {
		return f(ctx, rec)
	}
	return args.String(0), args.Error(1)
}

type MockAssessor struct {
	mock.Mock
}

func (m *MockAssessor) Assess(ctx context.Context, snapshot []model.EvidenceRecord) (annotator.Assessment, error) {
	args := m.Called(ctx, snapshot)
	return args.Get(0).(annotator.Assessment), args.Error(1)
}

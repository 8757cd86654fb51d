package annotator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseapi/internal/model"
)

func TestSimulatedAnnotate(t *testing.T) {
	a := &Simulated{}

	tests := []struct {
		mediaType model.MediaType
		contains  string
	}{
		{model.MediaDocument, "text extracted"},
		{model.MediaImage, "conditions described"},
		{model.MediaVideo, "key frames"},
		{model.MediaAudio, "transcribed"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mediaType), func(t *testing.T) {
			got, err := a.Annotate(context.Background(), model.EvidenceRecord{Name: "f", MediaType: tt.mediaType})
			require.NoError(t, err)
			assert.Contains(t, got, tt.contains)
		})
	}

	_, err := a.Annotate(context.Background(), model.EvidenceRecord{Name: "f", MediaType: "spreadsheet"})
	assert.Error(t, err)
}

func TestSimulatedAnnotateCancellation(t *testing.T) {
	a := &Simulated{Delay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Annotate(ctx, model.EvidenceRecord{Name: "f", MediaType: model.MediaDocument})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRemoteAnnotate(t *testing.T) {
	var gotReq annotateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(annotateResponse{Annotation: "looks like an incident report"})
	}))
	defer srv.Close()

	a, err := NewRemote(srv.URL)
	require.NoError(t, err)

	rec := model.EvidenceRecord{ID: "r1", Name: "report.pdf", MediaType: model.MediaDocument, Tags: []string{"incident"}, SizeBytes: 42}
	got, err := a.Annotate(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "looks like an incident report", got)
	assert.Equal(t, "r1", gotReq.ID)
	assert.Equal(t, "document", gotReq.MediaType)
}

func TestRemoteAnnotateFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(annotateResponse{Error: "file too large"})
	}))
	defer srv.Close()

	a, err := NewRemote(srv.URL)
	require.NoError(t, err)

	_, err = a.Annotate(context.Background(), model.EvidenceRecord{ID: "r2", Name: "big.mp4", MediaType: model.MediaVideo})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file too large")
}

func TestNewRemoteRequiresEndpoint(t *testing.T) {
	_, err := NewRemote("")
	assert.Error(t, err)
}

func TestSimulatedAssessor(t *testing.T) {
	a := &SimulatedAssessor{}

	weak, err := a.Assess(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 30, weak.CaseStrength)
	assert.Equal(t, RiskHigh, weak.RiskLevel)

	snap := []model.EvidenceRecord{
		{MediaType: model.MediaDocument, State: model.StateCompleted, Importance: model.ImportanceCritical},
		{MediaType: model.MediaImage, State: model.StateCompleted, Importance: model.ImportanceHigh},
		{MediaType: model.MediaAudio, State: model.StateCompleted, Importance: model.ImportanceHigh},
		{MediaType: model.MediaVideo, State: model.StateProcessing, Importance: model.ImportanceCritical},
	}
	strong, err := a.Assess(context.Background(), snap)
	require.NoError(t, err)
	assert.Greater(t, strong.CaseStrength, weak.CaseStrength)
	assert.LessOrEqual(t, strong.CaseStrength, 95)
	assert.NotEmpty(t, strong.RecommendedActions)

	again, err := a.Assess(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, strong.CaseStrength, again.CaseStrength, "deterministic for a given snapshot")
}

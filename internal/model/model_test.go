package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMediaType(t *testing.T) {
	for _, mt := range MediaTypes() {
		got, err := ParseMediaType(string(mt))
		assert.NoError(t, err)
		assert.Equal(t, mt, got)
	}

	_, err := ParseMediaType("spreadsheet")
	assert.Error(t, err)
	_, err = ParseMediaType("")
	assert.Error(t, err)
}

func TestParseImportance(t *testing.T) {
	got, err := ParseImportance("critical")
	assert.NoError(t, err)
	assert.Equal(t, ImportanceCritical, got)

	_, err = ParseImportance("urgent")
	assert.Error(t, err)
}

func TestImportanceRank(t *testing.T) {
	assert.Less(t, ImportanceLow.Rank(), ImportanceMedium.Rank())
	assert.Less(t, ImportanceMedium.Rank(), ImportanceHigh.Rank())
	assert.Less(t, ImportanceHigh.Rank(), ImportanceCritical.Rank())
	assert.Equal(t, -1, Importance("bogus").Rank())
}

func TestLifecycleStateTerminal(t *testing.T) {
	assert.False(t, StateUploading.Terminal())
	assert.False(t, StateProcessing.Terminal())
	assert.True(t, StateCompleted.Terminal())
	assert.True(t, StateError.Terminal())
}

func TestParseDocumentStatus(t *testing.T) {
	got, err := ParseDocumentStatus("pending_review")
	assert.NoError(t, err)
	assert.Equal(t, StatusPendingReview, got)

	_, err = ParseDocumentStatus("rejected")
	assert.Error(t, err)
}

func TestDocumentStatusRank(t *testing.T) {
	assert.Equal(t, 0, StatusDraft.Rank())
	assert.Equal(t, 1, StatusPendingReview.Rank())
	assert.Equal(t, 2, StatusApproved.Rank())
	assert.Equal(t, 3, StatusCompleted.Rank())
	assert.Equal(t, -1, DocumentStatus("bogus").Rank())
}

func TestVersionBumps(t *testing.T) {
	tests := []struct {
		name string
		in   string
		fn   func(string) string
		want string
	}{
		{"minor bump", "v1.2", BumpMinor, "v1.3"},
		{"minor bump initial", "v0.1", BumpMinor, "v0.2"},
		{"minor bump malformed", "garbage", BumpMinor, InitialVersion},
		{"major bump", "v1.2", BumpMajor, "v2.0"},
		{"major bump from draft", "v0.8", BumpMajor, "v1.0"},
		{"major bump malformed", "", BumpMajor, "v1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"workplace", "incident", "workplace", "", "audio"})
	assert.Equal(t, []string{"audio", "incident", "workplace"}, got)

	assert.Empty(t, NormalizeTags(nil))
}

func TestSeedDataInvariants(t *testing.T) {
	ids := map[string]struct{}{}
	for _, rec := range SeedEvidence() {
		_, dup := ids[rec.ID]
		assert.False(t, dup, "duplicate seed id %s", rec.ID)
		ids[rec.ID] = struct{}{}
		assert.NotEmpty(t, rec.Name)
		_, err := ParseMediaType(string(rec.MediaType))
		assert.NoError(t, err)
	}
	for _, doc := range SeedDocuments() {
		assert.False(t, doc.ModifiedAt.Before(doc.CreatedAt), "doc %s modified before created", doc.ID)
	}
}

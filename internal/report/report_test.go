package report

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseapi/internal/catalog"
	"caseapi/internal/model"
)

func snapshot() []model.EvidenceRecord {
	return []model.EvidenceRecord{
		{ID: "1", Name: "a.pdf", MediaType: model.MediaDocument, State: model.StateCompleted, SizeBytes: 100},
		{ID: "2", Name: "b.pdf", MediaType: model.MediaDocument, State: model.StateProcessing, SizeBytes: 200},
		{ID: "3", Name: "c.jpg", MediaType: model.MediaImage, State: model.StateCompleted, SizeBytes: 300},
		{ID: "4", Name: "d.mp3", MediaType: model.MediaAudio, State: model.StateError, SizeBytes: 400},
	}
}

func TestAggregateCounts(t *testing.T) {
	m := Aggregate(snapshot(), External{})

	assert.Equal(t, 4, m.Total)
	assert.Equal(t, 2, m.ByMediaType[model.MediaDocument])
	assert.Equal(t, 1, m.ByMediaType[model.MediaImage])
	assert.Equal(t, 0, m.ByMediaType[model.MediaVideo], "absent types still have a key")
	assert.Equal(t, 1, m.ByMediaType[model.MediaAudio])

	assert.Equal(t, 2, m.ByState[model.StateCompleted])
	assert.Equal(t, 1, m.ByState[model.StateProcessing])
	assert.Equal(t, 1, m.ByState[model.StateError])
	assert.Equal(t, 0, m.ByState[model.StateUploading])
}

func TestAggregateSumsMatchTotal(t *testing.T) {
	snap := snapshot()
	m := Aggregate(snap, External{})

	typeSum, stateSum := 0, 0
	for _, n := range m.ByMediaType {
		typeSum += n
	}
	for _, n := range m.ByState {
		stateSum += n
	}
	assert.Equal(t, len(snap), typeSum)
	assert.Equal(t, len(snap), stateSum)
}

func TestAggregateEmptySnapshot(t *testing.T) {
	m := Aggregate(nil, External{})
	assert.Equal(t, 0, m.Total)
	assert.Len(t, m.ByMediaType, 4)
	assert.Len(t, m.ByState, 4)
}

func TestAggregatePassesExternalThrough(t *testing.T) {
	ext := External{CaseStrength: 78, DaysActive: 42, MilestonesDone: 3, MilestonesTotal: 6, PriorityActions: 2}
	m := Aggregate(snapshot(), ext)
	assert.Equal(t, ext, m.External)
}

func TestCollector(t *testing.T) {
	store, err := catalog.NewStore(snapshot()...)
	require.NoError(t, err)

	c := NewCollector(store)

	expected := `
# HELP evidence_records Number of evidence records in the catalog, by media type.
# TYPE evidence_records gauge
evidence_records{media_type="audio"} 1
evidence_records{media_type="document"} 2
evidence_records{media_type="image"} 1
evidence_records{media_type="video"} 0
# HELP evidence_size_bytes_total Total declared size of all evidence records in bytes.
# TYPE evidence_size_bytes_total gauge
evidence_size_bytes_total 1000
`
	err = testutil.CollectAndCompare(c, strings.NewReader(expected), "evidence_records", "evidence_size_bytes_total")
	assert.NoError(t, err)
}

func TestCollectorTracksStore(t *testing.T) {
	store, err := catalog.NewStore(snapshot()...)
	require.NoError(t, err)
	c := NewCollector(store)

	store.Remove("4")
	require.NoError(t, store.Add(model.EvidenceRecord{ID: "5", Name: "e.mp4", MediaType: model.MediaVideo, State: model.StateUploading, SizeBytes: 50}))

	expected := `
# HELP evidence_records Number of evidence records in the catalog, by media type.
# TYPE evidence_records gauge
evidence_records{media_type="audio"} 0
evidence_records{media_type="document"} 2
evidence_records{media_type="image"} 1
evidence_records{media_type="video"} 1
`
	err = testutil.CollectAndCompare(c, strings.NewReader(expected), "evidence_records")
	assert.NoError(t, err)
}

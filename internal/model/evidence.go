package model

import (
	"fmt"
	"sort"
	"time"
)

// MediaType is the closed set of evidence media kinds.
type MediaType string

const (
	MediaDocument MediaType = "document"
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaAudio    MediaType = "audio"
)

// MediaTypes lists every media type in display order.
func MediaTypes() []MediaType {
	return []MediaType{MediaDocument, MediaImage, MediaVideo, MediaAudio}
}

// ParseMediaType validates a raw string against the closed set.
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(s) {
	case MediaDocument, MediaImage, MediaVideo, MediaAudio:
		return MediaType(s), nil
	}
	return "", fmt.Errorf("unknown media type %q", s)
}

// Importance is the ordinal priority assigned to a record.
type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceMedium   Importance = "medium"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

// ParseImportance validates a raw string against the closed set.
func ParseImportance(s string) (Importance, error) {
	switch Importance(s) {
	case ImportanceLow, ImportanceMedium, ImportanceHigh, ImportanceCritical:
		return Importance(s), nil
	}
	return "", fmt.Errorf("unknown importance %q", s)
}

// Rank returns the ordinal position of the importance level, low first.
func (i Importance) Rank() int {
	switch i {
	case ImportanceLow:
		return 0
	case ImportanceMedium:
		return 1
	case ImportanceHigh:
		return 2
	case ImportanceCritical:
		return 3
	}
	return -1
}

// LifecycleState is the processing stage of an evidence record.
type LifecycleState string

const (
	StateUploading  LifecycleState = "uploading"
	StateProcessing LifecycleState = "processing"
	StateCompleted  LifecycleState = "completed"
	StateError      LifecycleState = "error"
)

// LifecycleStates lists every state in pipeline order.
func LifecycleStates() []LifecycleState {
	return []LifecycleState{StateUploading, StateProcessing, StateCompleted, StateError}
}

// Terminal reports whether no forward transition exists from the state.
// StateError is terminal for the normal pipeline; only an explicit retry
// re-enters processing from it.
func (s LifecycleState) Terminal() bool {
	return s == StateCompleted || s == StateError
}

// EvidenceRecord is a single uploaded artifact tracked by the catalog.
// ID, UploadedAt and SizeBytes are set at ingest and never change. Annotation
// is written only by the lifecycle manager. Attempt counts entries into
// processing and guards against stale annotation commits.
type EvidenceRecord struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	MediaType   MediaType      `json:"media_type"`
	Category    string         `json:"category"`
	Tags        []string       `json:"tags"`
	Importance  Importance     `json:"importance"`
	UploadedAt  time.Time      `json:"uploaded_at"`
	SizeBytes   int64          `json:"size_bytes"`
	State       LifecycleState `json:"state"`
	Annotation  string         `json:"annotation,omitempty"`
	Description string         `json:"description,omitempty"`
	StoragePath string         `json:"-"`
	Attempt     int            `json:"-"`
}

// RecordID implements catalog.Record.
func (r EvidenceRecord) RecordID() string { return r.ID }

// NormalizeTags collapses duplicates and drops empty entries, returning a
// sorted set. Tag order carries no meaning.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

package model

import (
	"fmt"
	"time"
)

// DocumentStatus is the closed set of generated-document workflow states.
type DocumentStatus string

const (
	StatusDraft         DocumentStatus = "draft"
	StatusPendingReview DocumentStatus = "pending_review"
	StatusApproved      DocumentStatus = "approved"
	StatusCompleted     DocumentStatus = "completed"
)

// ParseDocumentStatus validates a raw string against the closed set.
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	switch DocumentStatus(s) {
	case StatusDraft, StatusPendingReview, StatusApproved, StatusCompleted:
		return DocumentStatus(s), nil
	}
	return "", fmt.Errorf("unknown document status %q", s)
}

// Rank returns the workflow position of the status. Status changes are
// forward-only: a document never moves to an equal or lower rank.
func (s DocumentStatus) Rank() int {
	switch s {
	case StatusDraft:
		return 0
	case StatusPendingReview:
		return 1
	case StatusApproved:
		return 2
	case StatusCompleted:
		return 3
	}
	return -1
}

// DocumentRecord is a generated legal document tracked alongside the evidence
// catalog. ModifiedAt never precedes CreatedAt; Version is a monotonic
// "v<major>.<minor>" token maintained by the document service.
type DocumentRecord struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	DocumentType string         `json:"document_type"`
	Description  string         `json:"description"`
	Status       DocumentStatus `json:"status"`
	Version      string         `json:"version"`
	CreatedAt    time.Time      `json:"created_at"`
	ModifiedAt   time.Time      `json:"modified_at"`
	Importance   Importance     `json:"importance"`
	SizeBytes    int64          `json:"size_bytes"`
}

// RecordID implements catalog.Record.
func (d DocumentRecord) RecordID() string { return d.ID }

// InitialVersion is the token assigned to a freshly drafted document.
const InitialVersion = "v0.1"

// BumpMinor advances the minor component of a version token: v1.2 -> v1.3.
// A malformed token restarts at InitialVersion rather than failing the edit.
func BumpMinor(version string) string {
	var major, minor int
	if _, err := fmt.Sscanf(version, "v%d.%d", &major, &minor); err != nil {
		return InitialVersion
	}
	return fmt.Sprintf("v%d.%d", major, minor+1)
}

// BumpMajor advances the major component and resets the minor: v1.2 -> v2.0.
func BumpMajor(version string) string {
	var major, minor int
	if _, err := fmt.Sscanf(version, "v%d.%d", &major, &minor); err != nil {
		return "v1.0"
	}
	return fmt.Sprintf("v%d.0", major+1)
}

package model

import "time"

// Demo seed data for running the service without a real case attached.
// Wired into the stores only when SEED_DEMO_DATA is enabled; tests build
// their own fixtures.

// SeedEvidence returns a small evidence catalog covering every media type
// and lifecycle state.
func SeedEvidence() []EvidenceRecord {
	base := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	return []EvidenceRecord{
		{
			ID:          "4f2a1d60-6a5e-4c3b-9b1f-9d1c1a6f0001",
			Name:        "incident_report_01.pdf",
			MediaType:   MediaDocument,
			Category:    "Reports",
			Tags:        []string{"harassment", "incident", "workplace"},
			Importance:  ImportanceCritical,
			UploadedAt:  base,
			SizeBytes:   2_516_582,
			State:       StateCompleted,
			Annotation:  "Document contains incident details with timestamps",
			Description: "Initial incident report documenting harassment events",
			Attempt:     1,
		},
		{
			ID:         "4f2a1d60-6a5e-4c3b-9b1f-9d1c1a6f0002",
			Name:       "workplace_photo_01.jpg",
			MediaType:  MediaImage,
			Category:   "Photos",
			Tags:       []string{"conditions", "evidence", "workplace"},
			Importance: ImportanceHigh,
			UploadedAt: base.AddDate(0, 0, 1),
			SizeBytes:  1_887_436,
			State:      StateCompleted,
			Annotation: "Image shows workplace conditions clearly",
			Attempt:    1,
		},
		{
			ID:         "4f2a1d60-6a5e-4c3b-9b1f-9d1c1a6f0003",
			Name:       "witness_statement.mp3",
			MediaType:  MediaAudio,
			Category:   "Statements",
			Tags:       []string{"audio", "statement", "witness"},
			Importance: ImportanceHigh,
			UploadedAt: base.AddDate(0, 0, 3),
			SizeBytes:  5_452_595,
			State:      StateProcessing,
			Attempt:    1,
		},
		{
			ID:         "4f2a1d60-6a5e-4c3b-9b1f-9d1c1a6f0004",
			Name:       "email_thread.pdf",
			MediaType:  MediaDocument,
			Category:   "Communications",
			Tags:       []string{"communication", "email", "hr"},
			Importance: ImportanceMedium,
			UploadedAt: base.AddDate(0, 0, 5),
			SizeBytes:  876_544,
			State:      StateCompleted,
			Annotation: "Thread shows escalation to HR without response",
			Attempt:    1,
		},
		{
			ID:         "4f2a1d60-6a5e-4c3b-9b1f-9d1c1a6f0005",
			Name:       "security_footage.mp4",
			MediaType:  MediaVideo,
			Category:   "Video Evidence",
			Tags:       []string{"incident", "security", "video"},
			Importance: ImportanceCritical,
			UploadedAt: base.AddDate(0, 0, 7),
			SizeBytes:  16_042_394,
			State:      StateError,
			Annotation: "transcoding failed",
			Attempt:    1,
		},
	}
}

// SeedDocuments returns a small generated-document library.
func SeedDocuments() []DocumentRecord {
	base := time.Date(2024, time.January, 20, 10, 0, 0, 0, time.UTC)
	return []DocumentRecord{
		{
			ID:           "b7c9e3f0-2d4a-4e8b-8c1d-5a6b7c8d0001",
			Title:        "Formal Complaint Letter",
			DocumentType: "Legal Document",
			Description:  "Official complaint to HR department",
			Status:       StatusCompleted,
			Version:      "v2.1",
			CreatedAt:    base,
			ModifiedAt:   base.AddDate(0, 0, 2),
			Importance:   ImportanceCritical,
			SizeBytes:    145_408,
		},
		{
			ID:           "b7c9e3f0-2d4a-4e8b-8c1d-5a6b7c8d0002",
			Title:        "Rights Notice Documentation",
			DocumentType: "Information",
			Description:  "Your legal rights summary",
			Status:       StatusApproved,
			Version:      "v1.0",
			CreatedAt:    base.AddDate(0, 0, -2),
			ModifiedAt:   base.AddDate(0, 0, -2),
			Importance:   ImportanceHigh,
			SizeBytes:    91_136,
		},
		{
			ID:           "b7c9e3f0-2d4a-4e8b-8c1d-5a6b7c8d0003",
			Title:        "Evidence Summary Report",
			DocumentType: "Case Documentation",
			Description:  "Comprehensive evidence analysis",
			Status:       StatusPendingReview,
			Version:      "v1.3",
			CreatedAt:    base.AddDate(0, 0, 5),
			ModifiedAt:   base.AddDate(0, 0, 6),
			Importance:   ImportanceHigh,
			SizeBytes:    262_144,
		},
		{
			ID:           "b7c9e3f0-2d4a-4e8b-8c1d-5a6b7c8d0004",
			Title:        "Demand for Action Letter",
			DocumentType: "Legal Notice",
			Description:  "Formal demand for resolution",
			Status:       StatusDraft,
			Version:      "v0.8",
			CreatedAt:    base.AddDate(0, 0, 8),
			ModifiedAt:   base.AddDate(0, 0, 8),
			Importance:   ImportanceHigh,
			SizeBytes:    68_608,
		},
	}
}

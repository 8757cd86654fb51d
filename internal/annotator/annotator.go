// Package annotator holds the external-analysis collaborators. The core
// treats annotation as opaque: it hands a record descriptor out and gets a
// text result or a failure reason back, exactly once per processing attempt.
package annotator

import (
	"context"
	"fmt"
	"time"

	"caseapi/internal/model"
)

// Annotator produces a textual analysis of an evidence file.
type Annotator interface {
	// Annotate blocks until the analysis finishes or ctx is done.
	Annotate(ctx context.Context, rec model.EvidenceRecord) (string, error)
}

// Simulated is a local stand-in for the real analysis service. It waits for
// the configured delay and returns a deterministic per-media-type summary.
type Simulated struct {
	Delay time.Duration
}

var _ Annotator = (*Simulated)(nil)

// Annotate implements Annotator. Honors ctx cancellation during the delay.
func (s *Simulated) Annotate(ctx context.Context, rec model.EvidenceRecord) (string, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}

	switch rec.MediaType {
	case model.MediaDocument:
		return fmt.Sprintf("Document %s analyzed: text extracted, dates and named parties indexed", rec.Name), nil
	case model.MediaImage:
		return fmt.Sprintf("Image %s analyzed: scene and visible conditions described", rec.Name), nil
	case model.MediaVideo:
		return fmt.Sprintf("Video %s analyzed: key frames and timestamps extracted", rec.Name), nil
	case model.MediaAudio:
		return fmt.Sprintf("Audio %s analyzed: speech transcribed with speaker turns", rec.Name), nil
	}
	return "", fmt.Errorf("unsupported media type %q", rec.MediaType)
}

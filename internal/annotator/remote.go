package annotator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"caseapi/internal/model"
)

// Remote calls an HTTP annotation service. The request carries the record
// descriptor only; file bytes are fetched by the service out of band.
type Remote struct {
	endpoint string
	client   *http.Client
}

var _ Annotator = (*Remote)(nil)

// NewRemote builds a Remote annotator. The client transport is
// otel-instrumented so annotation calls show up in traces.
func NewRemote(endpoint string) (*Remote, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("annotator endpoint is required")
	}
	return &Remote{
		endpoint: endpoint,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

type annotateRequest struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	MediaType string   `json:"media_type"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	SizeBytes int64    `json:"size_bytes"`
}

type annotateResponse struct {
	Annotation string `json:"annotation"`
	Error      string `json:"error"`
}

// Annotate implements Annotator.
func (r *Remote) Annotate(ctx context.Context, rec model.EvidenceRecord) (string, error) {
	body, err := json.Marshal(annotateRequest{
		ID:        rec.ID,
		Name:      rec.Name,
		MediaType: string(rec.MediaType),
		Category:  rec.Category,
		Tags:      rec.Tags,
		SizeBytes: rec.SizeBytes,
	})
	if err != nil {
		return "", fmt.Errorf("encode annotate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build annotate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call annotator: %w", err)
	}
	defer resp.Body.Close()

	// Cap the response read; annotation summaries are short.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("read annotator response: %w", err)
	}

	var out annotateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode annotator response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		reason := out.Error
		if reason == "" {
			reason = resp.Status
		}
		return "", fmt.Errorf("annotator rejected %s: %s", rec.ID, reason)
	}
	if out.Annotation == "" {
		return "", fmt.Errorf("annotator returned empty annotation for %s", rec.ID)
	}
	return out.Annotation, nil
}

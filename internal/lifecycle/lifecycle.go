// Package lifecycle advances evidence records through the
// uploading -> processing -> {completed | error} state machine and owns the
// asynchronous annotation tasks attached to processing.
package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"caseapi/internal/annotator"
	"caseapi/internal/catalog"
	"caseapi/internal/model"
)

var (
	// ErrInvalidTransition reports a state change the machine does not
	// permit. Surfaced to the caller, never swallowed.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	// ErrStaleState reports an annotation commit that lost to a newer
	// processing attempt on the same record.
	ErrStaleState = errors.New("stale lifecycle state")
)

// Outcome is a requested transition: the target state plus the annotation
// text (completed) or failure reason (error) to attach.
type Outcome struct {
	State model.LifecycleState
	Note  string
}

type task struct {
	attempt int
	cancel  context.CancelFunc
}

// Manager drives lifecycle transitions against the evidence store. Each
// processing attempt runs one annotation goroutine with its own cancellable
// context; deleting a record cancels its task and late commits are dropped.
type Manager struct {
	store   *catalog.Store[model.EvidenceRecord]
	annot   annotator.Annotator
	timeout time.Duration

	mu       sync.Mutex
	inflight map[string]task
	wg       sync.WaitGroup
}

// NewManager builds a Manager. timeout bounds each annotation attempt; zero
// means unbounded.
func NewManager(store *catalog.Store[model.EvidenceRecord], annot annotator.Annotator, timeout time.Duration) *Manager {
	return &Manager{
		store:    store,
		annot:    annot,
		timeout:  timeout,
		inflight: make(map[string]task),
	}
}

// allowed encodes the forward-only machine. error is terminal here; only
// Retry re-enters processing from it.
func allowed(from, to model.LifecycleState) bool {
	switch from {
	case model.StateUploading:
		return to == model.StateProcessing
	case model.StateProcessing:
		return to == model.StateCompleted || to == model.StateError
	case model.StateCompleted, model.StateError:
		return false
	}
	return false
}

// Advance validates and commits a transition atomically. On completed the
// note becomes the annotation; on error it becomes the failure reason.
func (m *Manager) Advance(id string, out Outcome) error {
	return m.store.Update(id, func(r *model.EvidenceRecord) error {
		if !allowed(r.State, out.State) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.State, out.State)
		}
		r.State = out.State
		r.Annotation = out.Note
		return nil
	})
}

// Begin moves a record from uploading to processing once its transfer has
// completed, and launches the annotation task for the new attempt.
func (m *Manager) Begin(ctx context.Context, id string) error {
	return m.enterProcessing(ctx, id, model.StateUploading)
}

// Retry re-enters processing from the error state. Any other state rejects
// with ErrInvalidTransition.
func (m *Manager) Retry(ctx context.Context, id string) error {
	return m.enterProcessing(ctx, id, model.StateError)
}

func (m *Manager) enterProcessing(ctx context.Context, id string, from model.LifecycleState) error {
	var (
		rec     model.EvidenceRecord
		attempt int
	)
	err := m.store.Update(id, func(r *model.EvidenceRecord) error {
		if r.State != from {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.State, model.StateProcessing)
		}
		r.State = model.StateProcessing
		r.Annotation = ""
		r.Attempt++
		rec = *r
		attempt = r.Attempt
		return nil
	})
	if err != nil {
		return err
	}
	m.dispatch(ctx, rec, attempt)
	return nil
}

// dispatch starts the annotation goroutine for one attempt. The task context
// is detached from the request (the HTTP call returns before annotation
// finishes) but keeps its values for trace propagation.
func (m *Manager) dispatch(ctx context.Context, rec model.EvidenceRecord, attempt int) {
	taskCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	m.mu.Lock()
	if prev, ok := m.inflight[rec.ID]; ok {
		prev.cancel()
	}
	m.inflight[rec.ID] = task{attempt: attempt, cancel: cancel}
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.clear(rec.ID, attempt)

		runCtx := taskCtx
		if m.timeout > 0 {
			var tcancel context.CancelFunc
			runCtx, tcancel = context.WithTimeout(taskCtx, m.timeout)
			defer tcancel()
		}

		note, err := m.annot.Annotate(runCtx, rec)
		if err != nil {
			if taskCtx.Err() != nil {
				// Cancelled by a delete; the record is gone or going,
				// committing would resurrect it.
				return
			}
			reason := err.Error()
			if errors.Is(err, context.DeadlineExceeded) {
				reason = "annotation timed out"
			}
			m.finish(rec.ID, attempt, Outcome{State: model.StateError, Note: reason})
			return
		}
		m.finish(rec.ID, attempt, Outcome{State: model.StateCompleted, Note: note})
	}()
}

// commit applies an annotation outcome, guarding against both deletion and a
// newer attempt. Absence is not an error: a record deleted mid-flight simply
// drops the late result.
func (m *Manager) commit(id string, attempt int, out Outcome) error {
	err := m.store.Update(id, func(r *model.EvidenceRecord) error {
		if r.Attempt != attempt {
			return fmt.Errorf("%w: attempt %d superseded by %d", ErrStaleState, attempt, r.Attempt)
		}
		if !allowed(r.State, out.State) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.State, out.State)
		}
		r.State = out.State
		r.Annotation = out.Note
		return nil
	})
	if errors.Is(err, catalog.ErrNotFound) {
		return nil
	}
	return err
}

// finish commits an annotation outcome from the task goroutine. Losing to a
// newer attempt is routine and dropped quietly; any other commit failure is
// an integrity problem that would otherwise vanish with the goroutine, so it
// is logged.
func (m *Manager) finish(id string, attempt int, out Outcome) {
	err := m.commit(id, attempt, out)
	if err == nil || errors.Is(err, ErrStaleState) {
		return
	}
	entry := map[string]any{
		"ts":          time.Now().UTC().Format(time.RFC3339Nano),
		"level":       "error",
		"msg":         "annotation_commit_failed",
		"evidence_id": id,
		"attempt":     attempt,
		"error":       err.Error(),
	}
	if b, jsonErr := json.Marshal(entry); jsonErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}

// Cancel aborts the in-flight annotation task for a record, if any. Called
// before deleting the record so the eventual callback cannot land.
func (m *Manager) Cancel(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.inflight[id]; ok {
		t.cancel()
		delete(m.inflight, id)
	}
}

func (m *Manager) clear(id string, attempt int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.inflight[id]; ok && t.attempt == attempt {
		delete(m.inflight, id)
	}
}

// Wait blocks until every in-flight annotation task has finished. Used on
// shutdown and in tests.
func (m *Manager) Wait() {
	m.wg.Wait()
}

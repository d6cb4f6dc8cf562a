package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nexusdebate/pkg/models"
)

// Status of one session's audit record.
type Status string

const (
	StatusRecording Status = "recording"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Entry tracks one session's recording outcome. On the failed path the
// original error text is preserved.
type Entry struct {
	Status  Status          `json:"status"`
	Payload *Payload        `json:"payload,omitempty"`
	Receipt *models.Receipt `json:"receipt,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Recorder drives the full audit flow: payload creation, hashing, and
// ledger submission, with per-session status tracking. Writes are
// keyed by session id; concurrent debates never contend on each
// other's entries.
type Recorder struct {
	ledger Ledger
	clock  func() time.Time

	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRecorder wraps a ledger backend.
func NewRecorder(ledger Ledger) *Recorder {
	return &Recorder{
		ledger:  ledger,
		clock:   time.Now,
		entries: make(map[string]Entry),
	}
}

// WithClock overrides payload timestamping, for tests.
func (r *Recorder) WithClock(clock func() time.Time) *Recorder {
	r.clock = clock
	return r
}

// Record canonicalizes and hashes the transcript, then submits the
// hash to the ledger. A failure here never invalidates the completed
// debate; the caller still holds a valid transcript and synthesis.
func (r *Recorder) Record(ctx context.Context, query string, messages []models.DebateMessage, synthesis models.Synthesis, sessionID string) (models.Receipt, error) {
	payload := BuildPayload(query, messages, synthesis, sessionID, r.clock())

	r.setEntry(sessionID, Entry{Status: StatusRecording, Payload: &payload})

	contentHash, err := HashPayload(payload)
	if err != nil {
		r.setEntry(sessionID, Entry{Status: StatusFailed, Error: err.Error()})
		return models.Receipt{}, fmt.Errorf("audit hashing failed: %w", err)
	}

	receipt, err := r.ledger.Submit(ctx, contentHash)
	if err != nil {
		r.setEntry(sessionID, Entry{Status: StatusFailed, Payload: &payload, Error: err.Error()})
		log.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("Ledger submission failed")
		return models.Receipt{}, fmt.Errorf("ledger submission failed: %w", err)
	}

	r.setEntry(sessionID, Entry{Status: StatusCompleted, Payload: &payload, Receipt: &receipt})

	log.Info().
		Str("session_id", sessionID).
		Str("tx_hash", receipt.TxHash).
		Int64("block", receipt.BlockNumber).
		Msg("Audit recorded")

	return receipt, nil
}

// Status returns the audit entry for a session, if any.
func (r *Recorder) Status(sessionID string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[sessionID]
	return entry, ok
}

// Forget drops a session's audit entry, for eviction.
func (r *Recorder) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}

func (r *Recorder) setEntry(sessionID string, entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[sessionID] = entry
}

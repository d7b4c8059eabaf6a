package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
)

// SnapshotKey is the store key holding the ledger blob.
const SnapshotKey = "ledger"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Book is the persisted ledger. It is read once when opened and rewritten
// as a whole value after every recorded session.
type Book struct {
	repo   store.SnapshotRepo
	log    zerolog.Logger
	ledger *Ledger
}

var _ session.Recorder = (*Book)(nil)

// Open loads the ledger from repo. Missing or malformed data yields an
// empty ledger; only store errors are returned.
func Open(ctx context.Context, repo store.SnapshotRepo, log zerolog.Logger) (*Book, error) {
	b := &Book{
		repo:   repo,
		log:    log.With().Str("component", "ledger").Logger(),
		ledger: New(),
	}

	snap, err := repo.Load(ctx, SnapshotKey)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if snap == nil {
		return b, nil
	}

	l, err := Decode(snap.Data)
	if err != nil {
		b.log.Warn().Err(err).Msg("ignoring malformed ledger, starting with no history")
		return b, nil
	}
	b.ledger = l
	b.log.Debug().Int("topics", len(l.Topics)).Msg("ledger loaded")
	return b, nil
}

// Decode parses and validates a ledger blob.
func Decode(data []byte) (*Ledger, error) {
	var l Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	if err := validate.Struct(l); err != nil {
		return nil, fmt.Errorf("validate ledger: %w", err)
	}
	if l.Topics == nil {
		l.Topics = make(map[string]*Entry)
	}
	for id, e := range l.Topics {
		if e == nil || e.TopicID != id {
			return nil, fmt.Errorf("validate ledger: entry %q does not match its key", id)
		}
	}
	return &l, nil
}

// Record adds a finished session and persists the ledger. The in-memory
// ledger only changes once the save succeeds.
func (b *Book) Record(ctx context.Context, sum *session.Summary) error {
	next := b.ledger.clone()
	next.Record(sum)
	if err := b.save(ctx, next); err != nil {
		return err
	}
	b.ledger = next
	e := next.Topics[sum.TopicID]
	b.log.Info().
		Str("topic", sum.TopicID).
		Int("score", e.LastScore).
		Int("attempts", e.Attempts).
		Msg("ledger updated")
	return nil
}

// Reset clears all history.
func (b *Book) Reset(ctx context.Context) error {
	if err := b.repo.Delete(ctx, SnapshotKey); err != nil {
		return fmt.Errorf("reset ledger: %w", err)
	}
	b.ledger = New()
	b.log.Info().Msg("ledger reset")
	return nil
}

// Ledger returns a copy of the current ledger.
func (b *Book) Ledger() *Ledger {
	return b.ledger.clone()
}

func (b *Book) save(ctx context.Context, l *Ledger) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := b.repo.Save(ctx, &store.Snapshot{Key: SnapshotKey, Data: data, UpdatedAt: time.Now()}); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

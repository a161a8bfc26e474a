package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/theirongolddev/moneymoves/internal/game"
	"github.com/theirongolddev/moneymoves/internal/log"
	"github.com/theirongolddev/moneymoves/internal/model"
	"github.com/theirongolddev/moneymoves/internal/store"
)

// Import errors.
var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrInvalidFile = errors.New("invalid file")
)

// Store loads and saves the whole ledger.
type Store interface {
	Load(ctx context.Context) (*model.Ledger, error)
	Save(ctx context.Context, l *model.Ledger) error
}

// Options configures a Book.
type Options struct {
	Clock  model.Clock
	Logger *log.Logger
}

// Book owns the live ledger. Every change is computed on a copy, persisted,
// and only then made visible. A Book is not safe for concurrent use.
type Book struct {
	store   Store
	clock   model.Clock
	engine  *game.Engine
	log     *log.Logger
	cur     *model.Ledger
	journal []Mutation
}

// Open loads the ledger from st. A missing or unreadable snapshot is
// replaced by the seeded default; other storage errors are returned.
func Open(ctx context.Context, st Store, opts Options) (*Book, error) {
	b := &Book{
		store:  st,
		clock:  opts.Clock,
		log:    opts.Logger,
		engine: game.NewEngine(opts.Clock),
	}
	if b.clock == nil {
		b.clock = model.SystemClock{}
		b.engine.Clock = b.clock
	}
	if b.log == nil {
		b.log = log.Discard()
	}
	b.log = b.log.WithComponent("ledger")

	l, err := st.Load(ctx)
	switch {
	case err == nil:
		b.cur = l
	case errors.Is(err, store.ErrNotFound):
		b.log.Debug("no snapshot, starting from default ledger")
		b.cur = model.DefaultLedger(b.clock)
	case errors.Is(err, store.ErrCorrupt):
		b.log.Warn("snapshot unreadable, starting from default ledger", "error", err)
		b.cur = model.DefaultLedger(b.clock)
	default:
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	return b, nil
}

// Ledger returns a copy of the live ledger.
func (b *Book) Ledger() *model.Ledger {
	return b.cur.Clone()
}

// Today returns the book clock's calendar date.
func (b *Book) Today() string {
	return model.Today(b.clock)
}

// Clock returns the clock the book evaluates "today" against.
func (b *Book) Clock() model.Clock {
	return b.clock
}

// Apply runs the mutations in order against a copy of the ledger and
// persists it. On any error the live ledger is left untouched.
func (b *Book) Apply(ctx context.Context, muts ...Mutation) ([]game.Reward, error) {
	next := b.cur.Clone()
	e := env{engine: b.engine, today: b.Today()}

	var rewards []game.Reward
	for _, m := range muts {
		r, err := m.apply(next, e)
		if err != nil {
			return nil, err
		}
		if r != nil {
			rewards = append(rewards, *r)
		}
	}

	if err := b.commit(ctx, next); err != nil {
		return nil, err
	}
	for _, m := range muts {
		b.log.Debug("applied", "mutation", m.String())
	}
	b.journal = append(b.journal, muts...)
	return rewards, nil
}

// Claim runs the challenge claim protocol. Claims that are unknown, already
// completed or not yet earned return false and change nothing.
func (b *Book) Claim(ctx context.Context, challengeID, monthKey string) (game.Reward, bool, error) {
	next := b.cur.Clone()
	r, ok := b.engine.Claim(next, challengeID, monthKey)
	if !ok {
		return game.Reward{}, false, nil
	}
	if err := b.commit(ctx, next); err != nil {
		return game.Reward{}, false, err
	}
	b.log.Debug("claimed", "challenge", challengeID, "xp", r.Amount)
	b.journal = append(b.journal,
		CompleteChallenge{ChallengeID: challengeID},
		GrantXP{Amount: r.Amount, Reason: r.Reason})
	return r, true, nil
}

// Export returns the live ledger as indented JSON.
func (b *Book) Export() ([]byte, error) {
	return store.EncodeIndent(b.cur)
}

// Import replaces the ledger with data after a structural check: it must be
// a JSON object whose "categories" is an array. Nothing else is validated.
func (b *Book) Import(ctx context.Context, data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return ErrInvalidFile
	}
	if _, ok := obj["categories"].([]any); !ok {
		return fmt.Errorf("%w: categories must be an array", ErrInvalidFile)
	}

	l, err := store.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if err := b.commit(ctx, l); err != nil {
		return err
	}
	b.log.Info("imported ledger", "categories", len(l.Categories), "transactions", len(l.Transactions))
	return nil
}

// Reset replaces the ledger with a fresh default.
func (b *Book) Reset(ctx context.Context) error {
	if err := b.commit(ctx, model.DefaultLedger(b.clock)); err != nil {
		return err
	}
	b.log.Info("reset ledger")
	return nil
}

// Journal returns the mutations applied through this book, oldest first.
func (b *Book) Journal() []Mutation {
	return append([]Mutation(nil), b.journal...)
}

func (b *Book) commit(ctx context.Context, next *model.Ledger) error {
	if err := b.store.Save(ctx, next); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	b.cur = next
	return nil
}

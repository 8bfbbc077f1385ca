package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tradelog/journal"
	"tradelog/reconcile"
)

// Fetcher is the external I/O boundary: both calls return completed
// batches or an error, never partial data.
type Fetcher interface {
	GetFills(ctx context.Context, wallet string, from time.Time) ([]reconcile.RawFill, error)
	GetAccount(ctx context.Context, wallet string) (reconcile.RawAccount, error)
}

// Store is the ledger persistence the syncer writes through.
type Store interface {
	ListWalletTrades(wallet string) ([]journal.Trade, error)
	ReplaceSynced(wallet string, merged []journal.Trade) error
}

// Syncer runs reconciliation passes. Ledgers are keyed per wallet, so
// different wallets may sync in parallel; two concurrent passes for
// the same wallet would interleave read-modify-write on one ledger, so
// they are serialized on a per-wallet mutex.
type Syncer struct {
	fetcher    Fetcher
	store      Store
	log        zerolog.Logger
	cutoffDays int
	epsilon    float64

	mu    sync.Mutex
	gates map[string]*sync.Mutex
}

func NewSyncer(f Fetcher, s Store, log zerolog.Logger, cutoffDays int, epsilon float64) *Syncer {
	if cutoffDays <= 0 {
		cutoffDays = 30
	}
	return &Syncer{
		fetcher:    f,
		store:      s,
		log:        log,
		cutoffDays: cutoffDays,
		epsilon:    epsilon,
		gates:      make(map[string]*sync.Mutex),
	}
}

func (s *Syncer) gate(wallet string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gates[wallet]
	if !ok {
		g = &sync.Mutex{}
		s.gates[wallet] = g
	}
	return g
}

// Sync runs one reconciliation pass for a wallet: fetch, normalize,
// aggregate, cross-check, merge, persist. A failed fetch aborts before
// any merge, leaving the ledger exactly as before.
func (s *Syncer) Sync(ctx context.Context, wallet string) (reconcile.Report, error) {
	g := s.gate(wallet)
	g.Lock()
	defer g.Unlock()

	runID := uuid.NewString()
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -s.cutoffDays)

	log := s.log.With().Str("run_id", runID).Str("wallet", wallet).Logger()
	log.Info().Time("cutoff", cutoff).Msg("sync started")

	rawFills, err := s.fetcher.GetFills(ctx, wallet, time.Time{})
	if err != nil {
		return reconcile.Report{}, fmt.Errorf("fetch fills: %w", err)
	}
	rawAccount, err := s.fetcher.GetAccount(ctx, wallet)
	if err != nil {
		return reconcile.Report{}, fmt.Errorf("fetch account: %w", err)
	}

	result, err := reconcile.Run(rawFills, rawAccount, reconcile.Options{
		Wallet:  wallet,
		Cutoff:  cutoff,
		Epsilon: s.epsilon,
		AsOf:    now,
	})
	if err != nil {
		return reconcile.Report{}, err
	}

	existing, err := s.store.ListWalletTrades(wallet)
	if err != nil {
		return result.Report, fmt.Errorf("load ledger: %w", err)
	}

	merged := journal.Merge(existing, result.Candidates)
	merged, retired := journal.RetireStaleOpen(merged, result.Live)
	if err := s.store.ReplaceSynced(wallet, merged); err != nil {
		return result.Report, fmt.Errorf("persist ledger: %w", err)
	}

	r := result.Report
	log.Info().
		Int("fills", len(rawFills)).
		Int("dropped_fills", r.DroppedFills).
		Int("dropped_positions", r.DroppedPositions).
		Int("skipped", r.Skipped).
		Int("discarded", r.Discarded).
		Int("suppressed", r.Suppressed).
		Int("closed_emitted", r.ClosedEmitted).
		Int("open_emitted", r.OpenEmitted).
		Int("retired", retired).
		Int("ledger_size", len(merged)).
		Msg("sync finished")

	return r, nil
}

// SyncAll reconciles the given wallets concurrently. Each wallet's
// failure is independent; the joined error reports all of them.
func (s *Syncer) SyncAll(ctx context.Context, wallets []string) error {
	var wg sync.WaitGroup
	errs := make([]error, len(wallets))

	for i, w := range wallets {
		wg.Add(1)
		go func(i int, w string) {
			defer wg.Done()
			if _, err := s.Sync(ctx, w); err != nil {
				errs[i] = fmt.Errorf("wallet %s: %w", w, err)
			}
		}(i, w)
	}
	wg.Wait()

	return errors.Join(errs...)
}

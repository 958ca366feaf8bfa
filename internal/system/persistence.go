package system

import (
	"context"
	"time"

	"github.com/beatbound/battle/internal/core/event"
	coresys "github.com/beatbound/battle/internal/core/system"
	"github.com/beatbound/battle/internal/persist"
	"go.uber.org/zap"
)

const (
	defaultFlushTimeout = 5 * time.Second
	maxPendingRecords   = 1024
	minRetryDelay       = time.Second
	maxRetryDelay       = 30 * time.Second
)

// BattleStore persists finished battle sessions.
type BattleStore interface {
	SaveBattles(ctx context.Context, recs []persist.BattleRecord) error
}

// PersistenceSystem collects BattleEnded events and writes them in one batch
// per tick. A batch that fails for transient reasons stays buffered and is
// retried with backoff; records the database refuses outright are dropped.
// Phase 5 (Persist).
type PersistenceSystem struct {
	store      BattleStore
	timeout    time.Duration
	log        *zap.Logger
	pending    []persist.BattleRecord
	saved      int
	dropped    int
	retryIn    time.Duration
	retryDelay time.Duration
}

func NewPersistenceSystem(bus *event.Bus, store BattleStore, timeout time.Duration, log *zap.Logger) *PersistenceSystem {
	if timeout <= 0 {
		timeout = defaultFlushTimeout
	}
	s := &PersistenceSystem{store: store, timeout: timeout, log: log}
	event.Subscribe(bus, s.onBattleEnded)
	return s
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) onBattleEnded(ev event.BattleEnded) {
	if len(s.pending) >= maxPendingRecords {
		old := s.pending[0]
		s.pending = s.pending[1:]
		s.dropped++
		s.log.Warn("battle history buffer full, dropping oldest",
			zap.String("player", old.Player), zap.Time("ended_at", old.EndedAt))
	}
	s.pending = append(s.pending, persist.BattleRecord{
		Player:          ev.Player,
		Outcome:         ev.Outcome,
		Enemies:         ev.Enemies,
		EnemiesDefeated: ev.EnemiesDefeated,
		LastEnemy:       ev.LastEnemy,
		StartedAt:       ev.StartedAt,
		EndedAt:         ev.EndedAt,
	})
}

func (s *PersistenceSystem) Update(dt time.Duration) {
	if len(s.pending) == 0 {
		return
	}
	if s.retryIn > 0 {
		s.retryIn -= dt
		if s.retryIn > 0 {
			return
		}
	}
	_ = s.Flush()
}

// Flush writes everything buffered now, ignoring any retry backoff. Called
// each tick and at shutdown.
func (s *PersistenceSystem) Flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	err := s.save(s.pending)
	if err == nil {
		s.saved += len(s.pending)
		s.log.Info("battle history saved", zap.Int("records", len(s.pending)))
		s.pending = nil
		s.retryIn, s.retryDelay = 0, 0
		return nil
	}
	if persist.Rejected(err) {
		// one bad record fails the whole batch; find it
		err = s.saveEach()
		if err == nil {
			s.retryIn, s.retryDelay = 0, 0
			return nil
		}
	}

	if s.retryDelay == 0 {
		s.retryDelay = minRetryDelay
	} else {
		s.retryDelay = min(2*s.retryDelay, maxRetryDelay)
	}
	s.retryIn = s.retryDelay
	s.log.Error("save battle history failed",
		zap.Int("pending", len(s.pending)),
		zap.Duration("retry_in", s.retryIn),
		zap.Error(err))
	return err
}

// saveEach writes pending records one by one. Rejected records are dropped,
// the rest stay pending. It returns the last transient error.
func (s *PersistenceSystem) saveEach() error {
	var keep []persist.BattleRecord
	var last error
	for _, rec := range s.pending {
		err := s.save([]persist.BattleRecord{rec})
		switch {
		case err == nil:
			s.saved++
		case persist.Rejected(err):
			s.dropped++
			s.log.Warn("battle record rejected, dropping",
				zap.String("player", rec.Player),
				zap.String("outcome", rec.Outcome),
				zap.Time("ended_at", rec.EndedAt),
				zap.Error(err))
		default:
			keep = append(keep, rec)
			last = err
		}
	}
	s.pending = keep
	return last
}

func (s *PersistenceSystem) save(recs []persist.BattleRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.store.SaveBattles(ctx, recs)
}

// Pending returns how many records wait to be written.
func (s *PersistenceSystem) Pending() int { return len(s.pending) }

// Saved returns how many records have been written.
func (s *PersistenceSystem) Saved() int { return s.saved }

// Dropped returns how many records were discarded unwritten.
func (s *PersistenceSystem) Dropped() int { return s.dropped }

package battle

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/beatbound/battle/internal/config"
	"github.com/beatbound/battle/internal/core/event"
	"github.com/beatbound/battle/internal/gamestate"
	"github.com/beatbound/battle/internal/world"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Options are the timings of the battle sequence.
type Options struct {
	CountdownDelay   float64       // countdown steps before "Battle!"
	CountdownStep    time.Duration // length of one countdown step
	EngageTimeout    time.Duration // 0 waits for the player forever
	DefeatBannerHold time.Duration // how long "Defeated <name>!" stays up
}

func OptionsFromConfig(cfg config.BattleConfig) Options {
	return Options{
		CountdownDelay:   cfg.CountdownDelay,
		CountdownStep:    cfg.CountdownStep,
		EngageTimeout:    cfg.EngageTimeout,
		DefeatBannerHold: cfg.DefeatBannerHold,
	}
}

// DefaultOptions mirrors config.Defaults().Battle.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Defaults().Battle)
}

// Deps are the collaborators a Manager drives. Bus, Tracer, Messages and Now
// are optional.
type Deps struct {
	Modes     ModeSwitcher
	Text      TextSink
	Conductor Conductor
	Bus       *event.Bus
	Tracer    trace.Tracer
	Messages  Messages
	Log       *zap.Logger
	Now       func() time.Time
}

type session struct {
	started  time.Time
	names    []string
	defeated int
	index    int // encounter number, 0-based
	span     trace.Span
}

// Manager runs one battle session at a time: it walks the player up to each
// queued enemy, counts down, starts the conductor and reacts to pawn deaths.
// It is advanced by Update from the game loop; nothing blocks.
// Single-goroutine access only (game loop).
type Manager struct {
	deps Deps
	opts Options

	player PlayerPawn
	enemy  EnemyPawn
	queue  []EnemyPawn

	phase         Phase
	active        bool
	transitioning bool
	sess          *session

	engageElapsed time.Duration
	count         float64
	announcing    bool
	stepElapsed   time.Duration
	bannerLeft    time.Duration
}

func NewManager(deps Deps, opts Options) *Manager {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Tracer == nil {
		deps.Tracer = noop.NewTracerProvider().Tracer("battle")
	}
	if deps.Messages == nil {
		deps.Messages = englishMessages{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if opts.CountdownStep <= 0 {
		opts.CountdownStep = time.Second
	}
	return &Manager{deps: deps, opts: opts}
}

// SetPlayer sets the pawn that fights every battle. The player cannot be
// swapped while a session is running.
func (m *Manager) SetPlayer(p PlayerPawn) error {
	if m.sess != nil {
		return ErrBattleInProgress
	}
	if p == nil {
		return ErrMissingPlayerPawn
	}
	m.player = p
	return nil
}

func (m *Manager) Player() PlayerPawn { return m.player }

// Enemy returns the current enemy, nil outside a session.
func (m *Manager) Enemy() EnemyPawn { return m.enemy }

// Queue returns the enemies still waiting, front first.
func (m *Manager) Queue() []EnemyPawn {
	out := make([]EnemyPawn, len(m.queue))
	copy(out, m.queue)
	return out
}

// IsBattleActive reports whether combat has begun and not yet ended. It stays
// true while the player re-engages a follow-up enemy.
func (m *Manager) IsBattleActive() bool { return m.active }

func (m *Manager) Phase() Phase { return m.phase }

// Transitioning reports whether the session is moving on to a queued enemy.
func (m *Manager) Transitioning() bool { return m.transitioning }

// InSession reports whether a battle session exists, active or not yet.
func (m *Manager) InSession() bool { return m.sess != nil }

// StartBattle begins a battle against enemies in order. Nil entries are
// skipped. Nothing changes when it returns an error.
func (m *Manager) StartBattle(enemies ...EnemyPawn) error {
	if m.sess != nil {
		return ErrBattleInProgress
	}
	queue := make([]EnemyPawn, 0, len(enemies))
	for _, e := range enemies {
		if e != nil {
			queue = append(queue, e)
		}
	}
	if len(queue) == 0 {
		m.deps.Log.Error("tried to start battle, but player has no enemy opponent")
		return ErrNoEnemies
	}
	if m.player == nil {
		return ErrMissingPlayerPawn
	}
	if m.player.Traversal() == nil {
		return fmt.Errorf("%w: %s has no traversal", ErrMissingPlayerPawn, m.player.Name())
	}

	if m.phase == PhaseResolving {
		m.deps.Text.UpdateCenterText("")
		m.bannerLeft = 0
	}

	names := make([]string, len(queue))
	for i, e := range queue {
		names[i] = e.Name()
	}
	_, span := m.deps.Tracer.Start(context.Background(), "battle.session",
		trace.WithAttributes(
			attribute.String("player", m.player.Name()),
			attribute.Int("enemy_count", len(queue)),
		))
	m.sess = &session{started: m.deps.Now(), names: names, span: span}

	m.deps.Modes.Transition(gamestate.ModeBattle)

	m.enemy = queue[0]
	m.queue = queue[1:]
	m.transitioning = false

	m.deps.Log.Info("battle started",
		zap.String("player", m.player.Name()),
		zap.Strings("enemies", names))
	if m.deps.Bus != nil {
		event.Emit(m.deps.Bus, event.BattleStarted{Player: m.player.ID(), Enemies: names})
	}
	m.beginEngage()
	return nil
}

// beginEngage sends the player to the current enemy's battle position.
func (m *Manager) beginEngage() {
	m.phase = PhaseEngaging
	m.engageElapsed = 0

	dest := m.enemy.Position().Add(m.enemy.Data().RelativeBattleDistance)
	m.player.Traversal().MoveToDestination(dest)

	m.sess.span.AddEvent("encounter", trace.WithAttributes(
		attribute.String("enemy", m.enemy.Name()),
		attribute.Int("index", m.sess.index),
	))
	m.deps.Log.Info("engaging enemy",
		zap.String("enemy", m.enemy.Name()),
		zap.Int("index", m.sess.index),
		zap.Int("remaining", len(m.queue)))
	if m.deps.Bus != nil {
		event.Emit(m.deps.Bus, event.EncounterStarted{
			Enemy:     m.enemy.ID(),
			EnemyName: m.enemy.Name(),
			Index:     m.sess.index,
			Remaining: len(m.queue),
		})
	}
}

// Update advances the sequence by dt. A returned error means the session was
// aborted and global state already restored.
func (m *Manager) Update(dt time.Duration) error {
	switch m.phase {
	case PhaseEngaging:
		return m.updateEngage(dt)
	case PhaseCountdown:
		return m.updateCountdown(dt)
	case PhaseResolving:
		m.bannerLeft -= dt
		if m.bannerLeft <= 0 {
			m.bannerLeft = 0
			m.deps.Text.UpdateCenterText("")
			m.phase = PhaseIdle
		}
	}
	return nil
}

func (m *Manager) updateEngage(dt time.Duration) error {
	if m.player == nil {
		m.abort(ErrMissingPlayerPawn)
		return ErrMissingPlayerPawn
	}
	mover := m.player.Traversal()
	if mover == nil {
		err := fmt.Errorf("%w: %s lost its traversal", ErrMissingPlayerPawn, m.player.Name())
		m.abort(err)
		return err
	}
	if !mover.MovingToDestination() {
		m.onEngaged()
		return nil
	}
	m.engageElapsed += dt
	if m.opts.EngageTimeout > 0 && m.engageElapsed >= m.opts.EngageTimeout {
		err := fmt.Errorf("engage %s after %s: %w", m.enemy.Name(), m.engageElapsed, ErrMovementTimeout)
		m.abort(err)
		return err
	}
	return nil
}

// onEngaged puts the pawns into battle mode and starts the countdown. A
// follow-up enemy only brings itself in; the player never left.
func (m *Manager) onEngaged() {
	if !m.transitioning {
		m.player.EnterBattle()
	}
	m.enemy.EnterBattle()

	m.phase = PhaseCountdown
	m.count = m.opts.CountdownDelay
	m.stepElapsed = 0
	m.announcing = false
	if m.count > 0 {
		m.deps.Text.UpdateCenterText(formatCount(m.count))
	} else {
		m.announce()
	}
}

func (m *Manager) announce() {
	m.announcing = true
	m.deps.Text.UpdateCenterText(m.deps.Messages.BattleStart())
}

func (m *Manager) updateCountdown(dt time.Duration) error {
	m.stepElapsed += dt
	for m.stepElapsed >= m.opts.CountdownStep {
		m.stepElapsed -= m.opts.CountdownStep
		if m.announcing {
			m.deps.Text.UpdateCenterText("")
			return m.beginCombat()
		}
		m.count--
		if m.count > 0 {
			m.deps.Text.UpdateCenterText(formatCount(m.count))
		} else {
			m.announce()
		}
	}
	return nil
}

func (m *Manager) beginCombat() error {
	bpm := m.enemy.Data().BPM
	if err := m.deps.Conductor.BeginConducting(bpm); err != nil {
		err = fmt.Errorf("begin combat with %s: %w", m.enemy.Name(), err)
		m.abort(err)
		return err
	}
	m.active = true
	m.transitioning = false
	m.phase = PhaseActive
	m.deps.Log.Info("combat began", zap.String("enemy", m.enemy.Name()), zap.Float64("bpm", bpm))
	if m.deps.Bus != nil {
		event.Emit(m.deps.Bus, event.CombatBegan{Enemy: m.enemy.ID(), BPM: bpm})
	}
	return nil
}

// OnPawnDeath routes a death by the pawn's role: the player dying loses the
// battle, the current enemy dying moves to the next one or wins it.
func (m *Manager) OnPawnDeath(p Pawn) error {
	if m.sess == nil {
		return ErrNoActiveBattle
	}
	switch p.Role() {
	case world.RolePlayer:
		if m.player == nil {
			return ErrMissingPlayerPawn
		}
		if p.ID() != m.player.ID() {
			return fmt.Errorf("%w: %s", ErrUnknownPawn, p.Name())
		}
		m.onPlayerDeath()
		return nil
	case world.RoleEnemy:
		if m.enemy == nil || p.ID() != m.enemy.ID() {
			return fmt.Errorf("%w: %s", ErrUnknownPawn, p.Name())
		}
		m.onEnemyDeath()
		return nil
	default:
		return fmt.Errorf("%w: %s has role %v", ErrUnknownPawn, p.Name(), p.Role())
	}
}

func (m *Manager) onPlayerDeath() {
	m.end(OutcomeDefeat, nil)
	m.deps.Text.UpdateCenterText(m.deps.Messages.PlayerDefeated())
}

func (m *Manager) onEnemyDeath() {
	m.sess.defeated++
	if len(m.queue) > 0 {
		m.deps.Log.Info("enemy defeated, next enemy",
			zap.String("enemy", m.enemy.Name()),
			zap.String("next", m.queue[0].Name()))
		m.enemy.ExitBattle()
		m.deps.Conductor.StopConducting()
		m.enemy = m.queue[0]
		m.queue = m.queue[1:]
		m.sess.index++
		m.transitioning = true
		m.beginEngage()
		return
	}

	name := m.enemy.Name()
	m.end(OutcomeVictory, nil)
	m.deps.Text.UpdateCenterText(m.deps.Messages.EnemyDefeated(name))
	if m.opts.DefeatBannerHold <= 0 {
		m.deps.Text.UpdateCenterText("")
		return
	}
	m.phase = PhaseResolving
	m.bannerLeft = m.opts.DefeatBannerHold
}

// EndBattle stops the current session and returns the game to free roam.
func (m *Manager) EndBattle() error {
	if m.sess == nil {
		return ErrNoActiveBattle
	}
	m.end(OutcomeAborted, nil)
	return nil
}

func (m *Manager) abort(cause error) {
	m.deps.Log.Error("battle aborted", zap.Error(cause))
	m.end(OutcomeAborted, cause)
	m.deps.Text.UpdateCenterText("")
}

// end tears the session down. Exactly one transition back to free roam.
func (m *Manager) end(outcome Outcome, cause error) {
	m.active = false
	m.deps.Conductor.StopConducting()
	player, last := "", ""
	if m.player != nil {
		m.player.ExitBattle()
		player = m.player.Name()
	}
	if m.enemy != nil {
		m.enemy.ExitBattle()
		last = m.enemy.Name()
	}
	m.deps.Modes.Transition(gamestate.ModeWorldTraversal)

	s := m.sess
	ended := m.deps.Now()
	s.span.SetAttributes(
		attribute.String("outcome", string(outcome)),
		attribute.Int("enemies_defeated", s.defeated),
	)
	if cause != nil {
		s.span.RecordError(cause)
		s.span.SetStatus(codes.Error, cause.Error())
	}
	s.span.End()

	m.deps.Log.Info("battle ended",
		zap.String("outcome", string(outcome)),
		zap.Int("defeated", s.defeated),
		zap.Duration("duration", ended.Sub(s.started)))
	if m.deps.Bus != nil {
		event.Emit(m.deps.Bus, event.BattleEnded{
			Player:          player,
			Outcome:         string(outcome),
			EnemiesDefeated: s.defeated,
			Enemies:         s.names,
			LastEnemy:       last,
			StartedAt:       s.started,
			EndedAt:         ended,
		})
	}

	m.sess = nil
	m.enemy = nil
	m.queue = nil
	m.transitioning = false
	m.phase = PhaseIdle
}

// formatCount renders a countdown value without float noise: 3 → "3", 2.5 → "2.5".
// A positive value never renders as "0".
func formatCount(v float64) string {
	r := math.Round(v*1000) / 1000
	if v > 0 && r <= 0 {
		r = 0.001
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beatbound/battle/internal/battle"
	"github.com/beatbound/battle/internal/conductor"
	"github.com/beatbound/battle/internal/config"
	"github.com/beatbound/battle/internal/core/event"
	"github.com/beatbound/battle/internal/core/geom"
	coresys "github.com/beatbound/battle/internal/core/system"
	"github.com/beatbound/battle/internal/data"
	"github.com/beatbound/battle/internal/gamestate"
	"github.com/beatbound/battle/internal/persist"
	"github.com/beatbound/battle/internal/scripting"
	"github.com/beatbound/battle/internal/system"
	"github.com/beatbound/battle/internal/telemetry"
	"github.com/beatbound/battle/internal/ui"
	"github.com/beatbound/battle/internal/world"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Environment and config
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: .env not loaded: %v\n", err)
	}
	cfgPath := "config/battle.toml"
	if p := os.Getenv("BEATBOUND_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Logger
	log, err := newLogger(cfg.Logging, cfg.Player.Name)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	ctx := context.Background()

	// 3. Telemetry
	tracer := telemetry.NoopTracer()
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Warn("telemetry disabled", zap.Error(err))
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(sctx); err != nil {
					log.Error("telemetry shutdown", zap.Error(err))
				}
			}()
			tracer = telemetry.Tracer("battle")
			printOK("OpenTelemetry tracing enabled")
		}
	}

	// 4. Data tables and scripts
	printSection("Data")
	enemies, err := data.LoadEnemyTable(cfg.Data.Enemies)
	if err != nil {
		return fmt.Errorf("enemies: %w", err)
	}
	printStat("Enemy templates", enemies.Count())
	encounters, err := data.LoadEncounterTable(cfg.Data.Encounters, enemies)
	if err != nil {
		return fmt.Errorf("encounters: %w", err)
	}
	printStat("Encounters", encounters.Count())

	engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	printOK("Lua action scripts loaded")
	fmt.Println()

	// 5. Battle history (optional)
	var battles *persist.BattleRepo
	if cfg.Database.DSN != "" {
		printSection("Database")
		dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if err := persist.RunMigrations(dbCtx, db); err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		cancel()
		battles = persist.NewBattleRepo(db)
		printOK("PostgreSQL battle history ready")
		fmt.Println()
	}

	// 6. World, rhythm and battle manager
	text, closeText, err := newTextSink(cfg.UI, log)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	defer closeText()
	msgs, err := ui.NewMessages(cfg.UI.Language)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	bus := event.NewBus()
	ws := world.NewState(bus)
	modes := gamestate.NewMachine(bus, log)
	cond := conductor.New(bus, log)

	mgr := battle.NewManager(battle.Deps{
		Modes:     modes,
		Text:      text,
		Conductor: cond,
		Bus:       bus,
		Tracer:    tracer,
		Messages:  msgs,
		Log:       log.Named("battle"),
	}, battle.OptionsFromConfig(cfg.Battle))

	player := ws.SpawnPlayer(cfg.Player.Name,
		geom.Vec3{X: cfg.Player.X, Y: cfg.Player.Y, Z: cfg.Player.Z},
		cfg.Player.Speed, cfg.Player.HP)
	if err := mgr.SetPlayer(player); err != nil {
		return fmt.Errorf("battle player: %w", err)
	}

	// 7. Systems
	runner := coresys.NewRunner()
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewMovementSystem(ws, log))
	runner.Register(battle.NewSystem(mgr, bus, ws, log))
	runner.Register(cond)
	runner.Register(system.NewSpinSystem(ws))
	if cfg.Autoplay.Enabled {
		runner.Register(system.NewAutoplaySystem(bus, mgr, ws, cfg.Autoplay, log.Named("autoplay")))
	}
	var persistSys *system.PersistenceSystem
	if battles != nil {
		persistSys = system.NewPersistenceSystem(bus, battles, cfg.Database.FlushTimeout, log)
		runner.Register(persistSys)
	}
	runner.Register(system.NewCleanupSystem(ws))

	// 8. Opening encounter
	started := false
	if cfg.Autoplay.Enabled && cfg.Autoplay.Encounter != "" {
		enc := encounters.Get(cfg.Autoplay.Encounter)
		if enc == nil {
			return fmt.Errorf("autoplay encounter %q not found", cfg.Autoplay.Encounter)
		}
		spawned, err := ws.SpawnEncounter(enc, enemies, engine, log)
		if err != nil {
			return err
		}
		foes := make([]battle.EnemyPawn, len(spawned))
		for i, e := range spawned {
			foes[i] = e
		}
		if err := mgr.StartBattle(foes...); err != nil {
			return fmt.Errorf("start battle: %w", err)
		}
		started = true
	}

	// 9. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Loop.TickRate)
	defer ticker.Stop()

	printSection("Ready")
	printReady(fmt.Sprintf("game loop running (tick: %s)", cfg.Loop.TickRate))
	fmt.Println()

	finish := func(reason string) error {
		log.Info("stopping", zap.String("reason", reason), zap.Uint64("ticks", runner.Ticks()))
		if mgr.InSession() {
			if err := mgr.EndBattle(); err != nil {
				log.Error("end battle", zap.Error(err))
			}
		}
		// deliver the final BattleEnded before the last flush
		runner.TickPhase(coresys.PhaseInput, 0)
		if persistSys != nil {
			if err := persistSys.Flush(); err != nil {
				return fmt.Errorf("final history flush: %w", err)
			}
		}
		return nil
	}

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Loop.TickRate)
			if limit := cfg.Autoplay.MaxTicks; limit > 0 && runner.Ticks() >= uint64(limit) {
				return finish("tick limit reached")
			}
			if started && !mgr.InSession() && mgr.Phase() == battle.PhaseIdle && bus.Pending() == 0 {
				return finish("autoplay battle finished")
			}
		case sig := <-shutdownCh:
			return finish("signal " + sig.String())
		}
	}
}

// newTextSink picks the centre-text sink for the configured UI mode.
func newTextSink(cfg config.UIConfig, log *zap.Logger) (battle.TextSink, func(), error) {
	if cfg.Mode == "terminal" {
		t, err := ui.NewTerminalText(log)
		if err != nil {
			return nil, nil, err
		}
		return t, t.Close, nil
	}
	return ui.NewLogText(log.Named("ui")), func() {}, nil
}

// battlelog prints the most recent battle sessions from the history table.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beatbound/battle/internal/config"
	"github.com/beatbound/battle/internal/persist"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	limit := 20
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n <= 0 {
			fmt.Fprintln(os.Stderr, "Usage: battlelog [limit]")
			os.Exit(1)
		}
		limit = n
	}
	if err := run(limit); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(limit int) error {
	_ = godotenv.Load()
	cfgPath := "config/battle.toml"
	if p := os.Getenv("BEATBOUND_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("%s: database.dsn is empty", cfgPath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, zap.NewNop())
	if err != nil {
		return err
	}
	defer db.Close()
	repo := persist.NewBattleRepo(db)

	recs, err := repo.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("recent battles: %w", err)
	}
	for _, r := range recs {
		fmt.Printf("%s  %-8s %-12s %d/%d  %-8s %s\n",
			r.EndedAt.Local().Format("2006-01-02 15:04:05"),
			r.Outcome, r.Player, r.EnemiesDefeated, len(r.Enemies),
			r.Duration().Round(time.Second), strings.Join(r.Enemies, " → "))
	}

	counts, err := repo.OutcomeCounts(ctx)
	if err != nil {
		return fmt.Errorf("outcome counts: %w", err)
	}
	outcomes := make([]string, 0, len(counts))
	for o := range counts {
		outcomes = append(outcomes, o)
	}
	sort.Strings(outcomes)
	parts := make([]string, len(outcomes))
	for i, o := range outcomes {
		parts[i] = fmt.Sprintf("%s=%d", o, counts[o])
	}
	fmt.Printf("\n%d shown; totals: %s\n", len(recs), strings.Join(parts, " "))
	return nil
}

package persist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// BattleRecord is one finished battle session.
type BattleRecord struct {
	Player          string
	Outcome         string // "victory", "defeat", "aborted"
	Enemies         []string
	EnemiesDefeated int
	LastEnemy       string
	StartedAt       time.Time
	EndedAt         time.Time
}

// Duration is how long the session lasted.
func (r BattleRecord) Duration() time.Duration { return r.EndedAt.Sub(r.StartedAt) }

// Rejected reports whether the server refused the data itself: SQLSTATE class
// 22 (data exception) or 23 (integrity constraint violation). Writing the same
// rows again fails the same way.
func Rejected(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23")
}

type BattleRepo struct {
	db *DB
}

func NewBattleRepo(db *DB) *BattleRepo {
	return &BattleRepo{db: db}
}

// SaveBattles writes a batch of records in one transaction. Either all of
// them land or none do.
func (r *BattleRepo) SaveBattles(ctx context.Context, recs []BattleRecord) error {
	if len(recs) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("battle history begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range recs {
		enemies := rec.Enemies
		if enemies == nil {
			enemies = []string{}
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO battle_history (player, outcome, enemies, enemies_defeated, last_enemy, started_at, ended_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			rec.Player, rec.Outcome, enemies, rec.EnemiesDefeated, rec.LastEnemy, rec.StartedAt, rec.EndedAt,
		); err != nil {
			return fmt.Errorf("battle history insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Recent returns up to limit records, newest first.
func (r *BattleRepo) Recent(ctx context.Context, limit int) ([]BattleRecord, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT player, outcome, enemies, enemies_defeated, last_enemy, started_at, ended_at
		 FROM battle_history ORDER BY ended_at DESC, id DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BattleRecord
	for rows.Next() {
		var rec BattleRecord
		if err := rows.Scan(&rec.Player, &rec.Outcome, &rec.Enemies, &rec.EnemiesDefeated,
			&rec.LastEnemy, &rec.StartedAt, &rec.EndedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// OutcomeCounts tallies sessions per outcome.
func (r *BattleRepo) OutcomeCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT outcome, count(*) FROM battle_history GROUP BY outcome`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		out[outcome] = n
	}
	return out, rows.Err()
}

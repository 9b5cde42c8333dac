// Package store persists range data and quiz history in a single
// SQLite file.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/w0uf/rangetrainer/internal/hands"
	"github.com/w0uf/rangetrainer/internal/ranges"
)

//go:embed schema.sql
var schema string

// Store wraps the SQLite database backing situations, ranges and quiz
// history.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens (creating if needed) the SQLite file at path and applies
// the embedded schema.
func Open(path string, logger *log.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, logger: logger.WithPrefix("store")}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSituation inserts a situation with all its ranges and hands in
// one transaction, replacing any prior situation with the same name.
func (s *Store) SaveSituation(ctx context.Context, sit *ranges.Situation) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM situations WHERE name = ?`, sit.Name); err != nil {
		return 0, fmt.Errorf("clear prior situation: %w", err)
	}

	var opener, callers, limpers string
	if sit.Sequence != nil {
		opener = sit.Sequence.Opener
		callers = strings.Join(sit.Sequence.Callers, ",")
		limpers = strings.Join(sit.Sequence.Limpers, ",")
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO situations (name, display_name, table_format, hero_position, vs_position, stack_depth, primary_action, opener, callers, limpers)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sit.Name, sit.DisplayName, sit.TableFormat, sit.HeroPosition, sit.VsPosition,
		sit.StackDepth, sit.PrimaryAction, opener, callers, limpers)
	if err != nil {
		return 0, fmt.Errorf("insert situation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("situation id: %w", err)
	}

	for _, r := range sit.Ranges {
		rr, err := tx.ExecContext(ctx, `
			INSERT INTO ranges (situation_id, range_key, name, label) VALUES (?, ?, ?, ?)`,
			id, r.Key, r.Name, string(r.Label))
		if err != nil {
			return 0, fmt.Errorf("insert range %s: %w", r.Key, err)
		}
		rid, err := rr.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("range id: %w", err)
		}
		for _, h := range r.Hands.Slice() {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO range_hands (range_id, hand) VALUES (?, ?)`, rid, string(h)); err != nil {
				return 0, fmt.Errorf("insert hand %s: %w", h, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug("saved situation", "id", id, "name", sit.Name, "ranges", len(sit.Ranges))
	return id, nil
}

// LoadSituation materializes one situation with all its ranges and
// hand sets.
func (s *Store) LoadSituation(ctx context.Context, id int64) (*ranges.Situation, error) {
	sit := &ranges.Situation{ID: id}
	var opener, callers, limpers string
	err := s.db.QueryRowContext(ctx, `
		SELECT name, display_name, table_format, hero_position, vs_position, stack_depth, primary_action, opener, callers, limpers
		FROM situations WHERE id = ?`, id).Scan(
		&sit.Name, &sit.DisplayName, &sit.TableFormat, &sit.HeroPosition, &sit.VsPosition,
		&sit.StackDepth, &sit.PrimaryAction, &opener, &callers, &limpers)
	if err != nil {
		return nil, fmt.Errorf("load situation %d: %w", id, err)
	}
	if opener != "" || callers != "" || limpers != "" {
		sit.Sequence = &ranges.ActionSequence{
			Opener:  opener,
			Callers: splitSeats(callers),
			Limpers: splitSeats(limpers),
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, range_key, name, label FROM ranges WHERE situation_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("load ranges for %d: %w", id, err)
	}
	defer rows.Close()

	var rangeIDs []int64
	for rows.Next() {
		var rid int64
		var r ranges.Range
		var label string
		if err := rows.Scan(&rid, &r.Key, &r.Name, &label); err != nil {
			return nil, fmt.Errorf("scan range: %w", err)
		}
		r.Label = ranges.Label(label)
		r.Hands = make(hands.Set)
		sit.Ranges = append(sit.Ranges, r)
		rangeIDs = append(rangeIDs, rid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ranges: %w", err)
	}

	for i, rid := range rangeIDs {
		if err := s.loadHands(ctx, rid, sit.Ranges[i].Hands); err != nil {
			return nil, err
		}
	}
	return sit, nil
}

func (s *Store) loadHands(ctx context.Context, rangeID int64, dst hands.Set) error {
	rows, err := s.db.QueryContext(ctx, `SELECT hand FROM range_hands WHERE range_id = ?`, rangeID)
	if err != nil {
		return fmt.Errorf("load hands for range %d: %w", rangeID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return fmt.Errorf("scan hand: %w", err)
		}
		dst[hands.Hand(h)] = true
	}
	return rows.Err()
}

// SituationSummary is the listing view of a situation, without its
// hand sets.
type SituationSummary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	TableFormat   string `json:"table_format"`
	HeroPosition  string `json:"hero_position"`
	StackDepth    string `json:"stack_depth"`
	PrimaryAction string `json:"primary_action"`
	RangeCount    int    `json:"range_count"`
}

// ListSituations returns all situations ordered by id.
func (s *Store) ListSituations(ctx context.Context) ([]SituationSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.display_name, s.table_format, s.hero_position, s.stack_depth, s.primary_action,
		       (SELECT COUNT(*) FROM ranges r WHERE r.situation_id = s.id)
		FROM situations s ORDER BY s.id`)
	if err != nil {
		return nil, fmt.Errorf("list situations: %w", err)
	}
	defer rows.Close()

	var out []SituationSummary
	for rows.Next() {
		var sum SituationSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.DisplayName, &sum.TableFormat,
			&sum.HeroPosition, &sum.StackDepth, &sum.PrimaryAction, &sum.RangeCount); err != nil {
			return nil, fmt.Errorf("scan situation: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// LoadAllSituations materializes every situation, for conflict
// detection across the whole database.
func (s *Store) LoadAllSituations(ctx context.Context) ([]*ranges.Situation, error) {
	sums, err := s.ListSituations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*ranges.Situation, 0, len(sums))
	for _, sum := range sums {
		sit, err := s.LoadSituation(ctx, sum.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, sit)
	}
	return out, nil
}

func splitSeats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

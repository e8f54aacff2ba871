package repository

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

//go:embed weeks_seed.json
var weeksSeedFS embed.FS

func (s *Store) GetWeekInfo(ctx context.Context, week int) (*domain.WeekInfo, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT week, baby_size, baby_length, baby_weight, baby_development, mother_changes, tips
		FROM week_info WHERE week = $1`, week)

	var w domain.WeekInfo
	err := row.Scan(&w.Week, &w.BabySize, &w.BabyLength, &w.BabyWeight, &w.BabyDevelopment, &w.MotherChanges, &w.Tips)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWeekNotFound
		}
		return nil, fmt.Errorf("get week info: %w", err)
	}
	return &w, nil
}

func (s *Store) ListWeekInfo(ctx context.Context) ([]domain.WeekInfo, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT week, baby_size, baby_length, baby_weight, baby_development, mother_changes, tips
		FROM week_info ORDER BY week`)
	if err != nil {
		return nil, fmt.Errorf("list week info: %w", err)
	}
	defer rows.Close()

	var out []domain.WeekInfo
	for rows.Next() {
		var w domain.WeekInfo
		if err := rows.Scan(&w.Week, &w.BabySize, &w.BabyLength, &w.BabyWeight, &w.BabyDevelopment, &w.MotherChanges, &w.Tips); err != nil {
			return nil, fmt.Errorf("scan week info: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// SeedWeekInfo loads the embedded week-by-week dataset. Idempotent: existing
// rows are overwritten so a new binary can ship corrected content.
func (s *Store) SeedWeekInfo(ctx context.Context) error {
	raw, err := weeksSeedFS.ReadFile("weeks_seed.json")
	if err != nil {
		return fmt.Errorf("read weeks seed: %w", err)
	}

	var weeks []domain.WeekInfo
	if err := json.Unmarshal(raw, &weeks); err != nil {
		return fmt.Errorf("parse weeks seed: %w", err)
	}

	for _, w := range weeks {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO week_info (week, baby_size, baby_length, baby_weight, baby_development, mother_changes, tips)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (week) DO UPDATE SET
				baby_size = EXCLUDED.baby_size,
				baby_length = EXCLUDED.baby_length,
				baby_weight = EXCLUDED.baby_weight,
				baby_development = EXCLUDED.baby_development,
				mother_changes = EXCLUDED.mother_changes,
				tips = EXCLUDED.tips`,
			w.Week, w.BabySize, w.BabyLength, w.BabyWeight, w.BabyDevelopment, w.MotherChanges, w.Tips)
		if err != nil {
			return fmt.Errorf("seed week %d: %w", w.Week, err)
		}
	}
	return nil
}

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"moodchat/internal/models"
)

func checkDataset(name string) error {
	switch name {
	case models.DatasetChat, models.DatasetEmotion:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownDataset, name)
}

// LoadDataset returns every phrase of the named dataset in insertion order.
func (d *DB) LoadDataset(ctx context.Context, name, labelColumn string) (*models.Dataset, error) {
	if err := checkDataset(name); err != nil {
		return nil, err
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT input, label FROM phrases
		WHERE dataset = $1
		ORDER BY id
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ds := &models.Dataset{Name: name, LabelColumn: labelColumn}
	for rows.Next() {
		var p models.LabeledPhrase
		if err := rows.Scan(&p.Input, &p.Label); err != nil {
			return nil, err
		}
		ds.Rows = append(ds.Rows, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ds.Rows) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrDatasetNotFound)
	}
	return ds, nil
}

// ReplaceDataset deletes the named dataset's phrases and inserts rows in
// their place, in one transaction.
func (d *DB) ReplaceDataset(ctx context.Context, name string, rows []models.LabeledPhrase) (int64, error) {
	if err := checkDataset(name); err != nil {
		return 0, err
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM phrases WHERE dataset = $1`, name); err != nil {
		return 0, fmt.Errorf("failed to clear dataset %s: %w", name, err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"phrases"},
		[]string{"dataset", "input", "label"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return []any{name, rows[i].Input, rows[i].Label}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy dataset %s: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return n, nil
}

// CountPhrases returns the number of stored phrases per dataset.
func (d *DB) CountPhrases(ctx context.Context) (map[string]int, error) {
	rows, err := d.Pool.Query(ctx, `SELECT dataset, COUNT(*) FROM phrases GROUP BY dataset`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

// Package datasource loads the chat and emotion datasets from files or from
// Postgres, and copies files into Postgres.
package datasource

import (
	"context"
	"fmt"

	"moodchat/internal/config"
	"moodchat/internal/dataset"
	"moodchat/internal/models"
)

// Store is the subset of the database used for datasets.
type Store interface {
	LoadDataset(ctx context.Context, name, labelColumn string) (*models.Dataset, error)
	ReplaceDataset(ctx context.Context, name string, rows []models.LabeledPhrase) (int64, error)
}

// Datasets holds both training tables.
type Datasets struct {
	Chat    *models.Dataset
	Emotion *models.Dataset
}

// Options returns the column options for the named dataset.
func Options(cfg *config.Config, name string) dataset.Options {
	opts := dataset.Options{InputColumn: cfg.InputColumn}
	switch name {
	case models.DatasetChat:
		opts.LabelColumn = cfg.ChatLabelColumn
	case models.DatasetEmotion:
		opts.LabelColumn = cfg.EmotionLabelColumn
	}
	return opts
}

// Path returns the configured file for the named dataset.
func Path(cfg *config.Config, name string) string {
	if name == models.DatasetEmotion {
		return cfg.EmotionDataset
	}
	return cfg.ChatDataset
}

// Load reads both datasets from the configured source. store is only used
// when cfg selects Postgres.
func Load(ctx context.Context, cfg *config.Config, store Store) (*Datasets, error) {
	var out Datasets
	for _, target := range []struct {
		name string
		dst  **models.Dataset
	}{
		{models.DatasetChat, &out.Chat},
		{models.DatasetEmotion, &out.Emotion},
	} {
		ds, err := loadOne(ctx, cfg, store, target.name)
		if err != nil {
			return nil, err
		}
		*target.dst = ds
	}
	return &out, nil
}

func loadOne(ctx context.Context, cfg *config.Config, store Store, name string) (*models.Dataset, error) {
	opts := Options(cfg, name)
	if cfg.UsesPostgres() {
		if store == nil {
			return nil, fmt.Errorf("%s dataset: no database configured", name)
		}
		ds, err := store.LoadDataset(ctx, name, opts.LabelColumn)
		if err != nil {
			return nil, fmt.Errorf("load %s dataset from database: %w", name, err)
		}
		return ds, nil
	}
	return dataset.LoadFile(Path(cfg, name), name, opts)
}

// Import parses the file at path and replaces the named dataset in store.
// Nothing is written if the file fails to parse.
func Import(ctx context.Context, store Store, name, path string, opts dataset.Options) (int64, error) {
	ds, err := dataset.LoadFile(path, name, opts)
	if err != nil {
		return 0, err
	}
	n, err := store.ReplaceDataset(ctx, name, ds.Rows)
	if err != nil {
		return 0, fmt.Errorf("import %s dataset: %w", name, err)
	}
	return n, nil
}

package datasource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodchat/internal/config"
	"moodchat/internal/dataset"
	"moodchat/internal/models"
	"moodchat/internal/testutil"
)

type fakeStore struct {
	datasets map[string][]models.LabeledPhrase
	err      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{datasets: make(map[string][]models.LabeledPhrase)}
}

func (f *fakeStore) LoadDataset(_ context.Context, name, labelColumn string) (*models.Dataset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Dataset{Name: name, LabelColumn: labelColumn, Rows: f.datasets[name]}, nil
}

func (f *fakeStore) ReplaceDataset(_ context.Context, name string, rows []models.LabeledPhrase) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.datasets[name] = rows
	return int64(len(rows)), nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(dir string) *config.Config {
	return &config.Config{
		DatasetSource:      config.SourceCSV,
		ChatDataset:        filepath.Join(dir, "chat.csv"),
		EmotionDataset:     filepath.Join(dir, "emotion.csv"),
		InputColumn:        "input",
		ChatLabelColumn:    "chatbot",
		EmotionLabelColumn: "emotion",
	}
}

func TestLoad_Files(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "chat.csv", "input,chatbot\nhi,Hello!\nbye,Goodbye!\n")
	writeFile(t, dir, "emotion.csv", "input,emotion\ni am happy,happy\n")

	got, err := Load(context.Background(), testConfig(dir), nil)
	require.NoError(t, err)

	assert.Len(t, got.Chat.Rows, 2)
	assert.Equal(t, models.DatasetChat, got.Chat.Name)
	assert.Len(t, got.Emotion.Rows, 1)
	assert.Equal(t, "happy", got.Emotion.Rows[0].Label)
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "chat.csv", "input,chatbot\nhi,Hello!\n")

	_, err := Load(context.Background(), testConfig(dir), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Postgres(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.DatasetSource = config.SourcePostgres

	store := newFakeStore()
	store.datasets[models.DatasetChat] = []models.LabeledPhrase{{Input: "hi", Label: "Hello!"}}
	store.datasets[models.DatasetEmotion] = []models.LabeledPhrase{{Input: "sad", Label: "sad"}}

	got, err := Load(context.Background(), cfg, store)
	require.NoError(t, err)
	assert.Equal(t, "chatbot", got.Chat.LabelColumn)
	assert.Equal(t, "emotion", got.Emotion.LabelColumn)
	assert.Len(t, got.Emotion.Rows, 1)

	_, err = Load(context.Background(), cfg, nil)
	assert.Error(t, err, "postgres source without a store")

	store.err = errors.New("connection refused")
	_, err = Load(context.Background(), cfg, store)
	assert.ErrorIs(t, err, store.err)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "chat.csv", "input,chatbot\nhi,Hello!\nhow are you,Fine!\n")

	store := newFakeStore()
	n, err := Import(context.Background(), store, models.DatasetChat, path, dataset.Options{LabelColumn: "chatbot"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, "how are you", store.datasets[models.DatasetChat][1].Input)
}

func TestImport_ParseErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "chat.csv", "input,chatbot\nhi,\n")

	store := newFakeStore()
	_, err := Import(context.Background(), store, models.DatasetChat, path, dataset.Options{LabelColumn: "chatbot"})
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrMalformedRow)
	assert.Empty(t, store.datasets)
}

func TestOptionsAndPath(t *testing.T) {
	cfg := testConfig("/data")

	assert.Equal(t, dataset.Options{InputColumn: "input", LabelColumn: "chatbot"}, Options(cfg, models.DatasetChat))
	assert.Equal(t, dataset.Options{InputColumn: "input", LabelColumn: "emotion"}, Options(cfg, models.DatasetEmotion))
	assert.Equal(t, cfg.ChatDataset, Path(cfg, models.DatasetChat))
	assert.Equal(t, cfg.EmotionDataset, Path(cfg, models.DatasetEmotion))
}

func TestLoad_PostgresIntegration(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	testutil.SeedDatasets(t, database)

	cfg := testConfig(t.TempDir())
	cfg.DatasetSource = config.SourcePostgres

	got, err := Load(context.Background(), cfg, database)
	require.NoError(t, err)
	assert.Equal(t, testutil.ChatRows, got.Chat.Rows)
	assert.Equal(t, testutil.EmotionRows, got.Emotion.Rows)
}

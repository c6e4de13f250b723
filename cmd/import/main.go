// Command import copies dataset files into the Postgres phrases table.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"moodchat/internal/config"
	"moodchat/internal/datasource"
	"moodchat/internal/db"
	"moodchat/internal/models"
)

var (
	inputColumn string
	labelColumn string
)

var rootCmd = &cobra.Command{
	Use:   "import",
	Short: "Load chat and emotion datasets into Postgres",
	Long: "Replaces the stored rows of a dataset with the contents of a CSV or TSV file.\n" +
		"Connection and default paths come from the same environment as the server.",
}

var datasetCmd = &cobra.Command{
	Use:       "dataset <chat|emotion> [file]",
	Short:     "Import one dataset",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{models.DatasetChat, models.DatasetEmotion},
	RunE:      runDataset,
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Import both datasets from CHAT_DATASET and EMOTION_DATASET",
	Args:  cobra.NoArgs,
	RunE:  runAll,
}

func init() {
	datasetCmd.Flags().StringVar(&inputColumn, "input-column", "", "input column header (default INPUT_COLUMN)")
	datasetCmd.Flags().StringVar(&labelColumn, "label-column", "", "label column header (default per dataset)")

	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(allCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openDatabase(ctx context.Context) (*config.Config, *db.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required")
	}

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		database.Close()
		return nil, nil, err
	}
	return cfg, database, nil
}

func runDataset(cmd *cobra.Command, args []string) error {
	name := args[0]
	if name != models.DatasetChat && name != models.DatasetEmotion {
		return fmt.Errorf("unknown dataset %q (want %s or %s)", name, models.DatasetChat, models.DatasetEmotion)
	}

	ctx := cmd.Context()
	cfg, database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	path := datasource.Path(cfg, name)
	if len(args) == 2 {
		path = args[1]
	}
	opts := datasource.Options(cfg, name)
	if inputColumn != "" {
		opts.InputColumn = inputColumn
	}
	if labelColumn != "" {
		opts.LabelColumn = labelColumn
	}

	n, err := datasource.Import(ctx, database, name, path, opts)
	if err != nil {
		return err
	}
	log.Printf("Imported %d %s phrases from %s", n, name, path)
	return nil
}

func runAll(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	for _, name := range []string{models.DatasetChat, models.DatasetEmotion} {
		path := datasource.Path(cfg, name)
		n, err := datasource.Import(ctx, database, name, path, datasource.Options(cfg, name))
		if err != nil {
			return err
		}
		log.Printf("Imported %d %s phrases from %s", n, name, path)
	}
	return nil
}

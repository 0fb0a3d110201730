package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE...",
		Short: "Import ratings from CSV",
		Long: `Load rating rows from CSV files into the database.

Files written by export are accepted, as are older layouts without a
clip_id column. A file without an annotator column is attributed to the
annotator named by the file name. Rows with no filename or with scores
outside 1-9 are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			_, ratingService := newRatingService(cfg, db, nil)
			out := cmd.OutOrStdout()
			for _, path := range args {
				res, err := ratingService.Import(cmd.Context(), path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Imported %d rows from %s (%d skipped)\n", res.Imported, res.Path, res.Skipped)
			}
			return nil
		},
	}
}

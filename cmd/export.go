package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		annotatorID string
		outDir      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export ratings to CSV",
		Long: `Write one CSV file per annotator with every rating they submitted.

Files are named <annotator>.csv and hold the columns
clip_id, filename, valence, arousal, dominance, annotator, timestamp.

Example:
  vad-annotator export
  vad-annotator export --annotator ann1 --out ./annotations`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.Export.Dir
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			_, ratingService := newRatingService(cfg, db, nil)
			results, err := ratingService.Export(cmd.Context(), outDir, annotatorID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No ratings to export")
				return nil
			}
			for _, r := range results {
				fmt.Fprintf(out, "Wrote %d rows for %s to %s\n", r.Rows, r.Annotator, r.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&annotatorID, "annotator", "", "export only this annotator")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides config)")
	return cmd
}

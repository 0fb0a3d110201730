package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/killallgit/vad-annotator/internal/client"
	"github.com/killallgit/vad-annotator/internal/session"
	"github.com/killallgit/vad-annotator/internal/terminal"
	"github.com/killallgit/vad-annotator/pkg/ffmpeg"
)

func newAnnotateCmd() *cobra.Command {
	var (
		serverURL   string
		annotatorID string
		ffprobePath string
		ffplayPath  string
	)

	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Annotate clips in the terminal",
		Long: `Start an annotation session against a running rating service.

Clips are played locally through ffplay. Each clip gets a valence, arousal
and dominance rating from 1 to 9; the session resumes at the first clip the
annotator has not rated yet. Type "help" once running for the commands.

Example:
  vad-annotator annotate
  vad-annotator annotate --annotator ann1
  vad-annotator annotate --server http://annotation-host:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if serverURL != "" {
				cfg.Client.BaseURL = serverURL
			}
			if ffprobePath != "" {
				cfg.Player.FFprobePath = ffprobePath
			}
			if ffplayPath != "" {
				cfg.Player.FFplayPath = ffplayPath
			}

			log := logrus.StandardLogger()

			ff := ffmpeg.New(cfg.Player.FFprobePath, cfg.Player.FFplayPath, cfg.Player.ProbeTimeout)
			if err := ff.ValidateBinaries(); err != nil {
				return fmt.Errorf("local playback unavailable: %w", err)
			}

			bridge := &terminal.MediaBridge{}
			player := ff.NewPlayer(bridge, cfg.Player.TickInterval)
			defer player.Close()

			backend := client.NewClient(client.Config{
				BaseURL: cfg.Client.BaseURL,
				Timeout: cfg.Client.Timeout,
				Logger:  log,
			})
			presenter := terminal.NewPresenter(cmd.OutOrStdout())

			sess := session.New(backend, player, presenter, session.WithLogger(log))
			bridge.Attach(sess)

			return runAnnotate(cmd.Context(), cmd, sess, presenter, annotatorID)
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "rating service base URL (overrides config)")
	cmd.Flags().StringVar(&annotatorID, "annotator", "", "log in as this annotator immediately")
	cmd.Flags().StringVar(&ffprobePath, "ffprobe", "", "ffprobe binary (overrides config)")
	cmd.Flags().StringVar(&ffplayPath, "ffplay", "", "ffplay binary (overrides config)")
	return cmd
}

// runAnnotate shows the login screen, optionally logs in, then hands the
// terminal to the command loop
func runAnnotate(ctx context.Context, cmd *cobra.Command, sess *session.Controller, presenter *terminal.Presenter, annotatorID string) error {
	presenter.Render(sess.View())

	if annotatorID != "" {
		// Failures are alerted and leave the login prompt up
		_ = sess.Dispatch(ctx, session.LoginEvent{AnnotatorID: annotatorID})
	}

	runner := terminal.NewRunner(cmd.InOrStdin(), cmd.OutOrStdout(), logrus.StandardLogger())
	if err := runner.Run(ctx, sess); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

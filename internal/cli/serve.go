package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/statementizer/internal/api"
	"github.com/ppiankov/statementizer/internal/segment"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the split and classify endpoints over HTTP",
	Long: `Serve starts an HTTP server with:
  GET  /healthz
  GET  /api/v1/strategies
  POST /api/v1/segment    (multipart: file, id_column, text_column, speaker_column, strategy, tags, strip_html, format)
  POST /api/v1/classify   (multipart: file, column)

Example:
  statementizer serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("dict", "", "tactic dictionary file for /api/v1/classify (default: built-in)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()

	// Loaded before listening so no request pays for it
	fmt.Fprintf(stderr, "Loading sentence model...\n")
	punkt, err := segment.NewPunktModel()
	if err != nil {
		return fmt.Errorf("load sentence model: %w", err)
	}

	srv, err := api.NewServer(cfg, api.WithLogOutput(stderr), api.WithSentenceModel(punkt))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(stderr, "Listening on %s (strategy: %s)\n", cfg.Server.Addr, cfg.Segmentation.Strategy)
	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil && err != context.Canceled {
		return fmt.Errorf("serve: %w", err)
	}

	fmt.Fprintf(stderr, "Server stopped\n")
	return nil
}

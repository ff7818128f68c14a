package cmd

import (
	"github.com/gofiber/fiber/v2"
	recoverer "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/pennyledger/expense-ingest/internal/api"
	"github.com/pennyledger/expense-ingest/internal/config"
	"github.com/pennyledger/expense-ingest/internal/parser"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP ingestion API",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			BodyLimit:             cfg.Server.MaxUploadMB << 20,
			DisableStartupMessage: true,
		})
		// A malformed upload must never take the process down.
		app.Use(recoverer.New())

		h := &api.Handler{
			Ingestor: &parser.Ingestor{Log: &log},
			DataDir:  cfg.Ingest.DataDir,
			Log:      log,
		}
		h.Register(app)

		log.Info().Str("addr", cfg.Server.Addr()).Msg("listening")
		return app.Listen(cfg.Server.Addr())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

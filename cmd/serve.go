package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"tablediff/core/database"
	"tablediff/core/loader"
	"tablediff/core/logger"
	"tablediff/core/middleware/auth"
	"tablediff/core/middleware/rayid"
	"tablediff/core/source"
	"tablediff/feature/compare"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var delimiter string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the comparison HTTP server",
		Long: `Starts the HTTP server exposing POST /compare and POST /compare/columns.

The server reads s3:// objects and, when the database is reachable, sql:// tables.
Local files are not served.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			comma, err := source.ParseDelimiter(delimiter)
			if err != nil {
				return err
			}

			// 1. Load configuration and logger
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			logg := rt.logger
			defer logg.Sync()
			zap.ReplaceGlobals(logg)
			cfg := rt.cfg

			// 2. Initialize storage
			store, err := rt.storageClient()
			if err != nil {
				return err
			}
			if ok, err := store.BucketExists(cmd.Context(), cfg.Storage.Bucket); err != nil {
				logg.Warn("Storage is unreachable", zap.Error(err))
			} else if !ok {
				logg.Warn("Default bucket does not exist", zap.String("bucket", cfg.Storage.Bucket))
			}
			resolver := source.NewResolver(nil)
			resolver.Register(source.SchemeObject, source.NewObjectSource(store, cfg.Storage.Bucket, comma))

			// 3. Connect to database (optional)
			if db, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Optional database connection failed, sql:// tables are unavailable", zap.Error(err))
			} else {
				resolver.Register(source.SchemeSQL, source.NewSQLSource(db))
				logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
			}

			cache := source.NewCache(resolver, cfg.Server.CacheTTL())

			// 4. Initialize Fiber app
			app := fiber.New(fiber.Config{
				DisableStartupMessage: true,
			})

			// RayID must be first to trace everything
			app.Use(rayid.New())
			app.Use(func(c *fiber.Ctx) error {
				l := logger.WithRayID(logg, c)
				l.Info("Request started",
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.String("ip", c.IP()),
				)
				err := c.Next()
				if err != nil {
					l.Error("Request error", zap.Error(err))
				}
				return err
			})

			app.Get("/health", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{"status": "ok"})
			})

			if cfg.Server.ApiKey == "" {
				logg.Warn("No API key configured, the API is unprotected")
			}
			app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/health"}}))

			// 5. Register and load features
			mgr := loader.NewManager(logg)
			mgr.Register(compare.NewFeature(cache, store, cfg.Storage.Bucket, cfg.Report, logg))
			if err := mgr.LoadAll(app); err != nil {
				return err
			}

			// 6. Start server
			errCh := make(chan error, 1)
			go func() {
				logg.Info("Starting server", zap.String("port", cfg.Server.Port))
				errCh <- app.Listen(cfg.Server.Address())
			}()

			// 7. Graceful shutdown
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case <-sig:
			}
			logg.Info("Shutting down server...")
			return app.Shutdown()
		},
	}

	cmd.Flags().StringVar(&delimiter, "delimiter", ",", "Field delimiter for stored delimited files")
	return cmd
}

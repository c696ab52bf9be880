package cmd

import (
	"bibcleaner/core/loader"
	"bibcleaner/core/logger"
	"bibcleaner/core/middleware/auth"
	"bibcleaner/core/middleware/rayid"
	"bibcleaner/core/storage"

	"bibcleaner/feature/cleaner"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "bibcleaner/docs/swagger"
)

// @title bibcleaner API
// @version 1.0
// @description Cleans BibTeX files against the DBLP computer science bibliography.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cleaning HTTP server",
	Long: `Starts the HTTP server exposing POST /clean and GET /search.
Ambiguous matches are settled by server.choice_policy since nobody can be asked.`,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. Configuration, logger and index client
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	cfg := rt.cfg
	logg := rt.log
	zap.ReplaceGlobals(logg)

	// 2. Storage (Optional)
	var store storage.Client
	if cfg.Storage.Enabled {
		if store, err = storage.NewClient(cfg.Storage); err != nil {
			return err
		}
	}

	// 3. Features
	svc, err := cleaner.NewService(rt.client, cfg.DBLP, cfg.Clean, cfg.Server.ChoicePolicy, store, cfg.Storage, logg)
	if err != nil {
		return err
	}
	mgr := loader.NewManager()
	mgr.Register(cleaner.NewFeature(svc))

	// 4. Fiber App
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We will log our own startup message
		BodyLimit:             cfg.Server.BodyLimit(),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
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

	// Swagger Documentation (Public)
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return err
	}
	logg.Info("Features loaded", zap.Strings("features", loaded))

	// 5. Start Server
	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", cfg.Server.Port))
		errCh <- app.Listen(cfg.Server.Addr())
	}()

	// 6. Graceful Shutdown
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logg.Info("Shutting down server...")
	return app.Shutdown()
}

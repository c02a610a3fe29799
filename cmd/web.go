package cmd

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rubiojr/hookvault/cmd/web/components"
	"github.com/rubiojr/hookvault/cmd/web/components/types"
	"github.com/rubiojr/hookvault/pkg/api"
	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/format"
	"github.com/rubiojr/hookvault/pkg/log"
	"github.com/rubiojr/hookvault/pkg/pipeline"
	"github.com/rubiojr/hookvault/pkg/version"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

//go:embed web/static/*
var staticFS embed.FS

var webLogger = log.ForService("web")

const unavailableMessage = "Hooks are unavailable right now. Please try again later."

// WebCommand creates the web command with both API and UI
func WebCommand() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start web server with the hooks API and the browsing page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on (defaults to web.port)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (defaults to web.host)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if host := c.String("host"); host != "" {
				cfg.Web.Host = host
			}
			if port := c.String("port"); port != "" {
				cfg.Web.Port = port
			}

			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			ws := newWebServer(store, cfg.Browse.CopyFeedback.Duration)
			return serve(ctx, cfg.ListenAddr(), ws.handler())
		},
	}
}

// webServer holds the gateway the browsing page and the API read from.
type webServer struct {
	gateway      core.Gateway
	apiServer    *api.Server
	copyFeedback time.Duration
}

func newWebServer(gateway core.Gateway, copyFeedback time.Duration) *webServer {
	return &webServer{
		gateway:      gateway,
		apiServer:    api.NewServer(gateway),
		copyFeedback: copyFeedback,
	}
}

// handler builds the full route table wrapped in middleware.
func (s *webServer) handler() http.Handler {
	mux := http.NewServeMux()
	s.apiServer.RegisterRoutes(mux)

	mux.HandleFunc("GET /{$}", s.handleHome)

	static, err := fs.Sub(staticFS, "web/static")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	return api.LoggingMiddleware(api.CorsMiddleware(api.CompressMiddleware(mux)))
}

// handleHome renders the browsing page. The selection state travels in the
// query string and the collection is fetched once per page load.
func (s *webServer) handleHome(w http.ResponseWriter, r *http.Request) {
	state := components.ParseState(r.URL.Query())

	data := types.PageData{
		Title:          "HookVault",
		CopyFeedbackMS: s.copyFeedback.Milliseconds(),
		Version:        version.Version,
	}

	hooks, err := s.gateway.FetchAllHooks(r.Context())
	if err != nil {
		webLogger.Errorf("failed to load hooks: %v", err)
		data.Error = unavailableMessage
		hooks = nil
	}

	session := pipeline.NewSession(hooks)
	total := pipeline.TotalPages(len(session.Filtered(state)), pipeline.PageSize)
	state = state.GoTo(state.CurrentPage(), total)

	tag := format.AcceptLanguage(r.Header.Get("Accept-Language"))
	data.View = session.View(state, tag)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.Index(data).Render(r.Context(), w); err != nil {
		webLogger.Errorf("failed to render page: %v", err)
	}
}

// serve runs handler on addr until ctx is cancelled or a termination signal
// arrives, then shuts the server down gracefully.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ErrorLog:          webLogger.StdLogger(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		webLogger.Infof("Starting web server on http://%s", addr)
		webLogger.Infof("  GET /          browsing page")
		webLogger.Infof("  GET /api/test  all hooks as JSON")
		webLogger.Infof("  GET /health    health check")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		webLogger.Infof("Shutting down web server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

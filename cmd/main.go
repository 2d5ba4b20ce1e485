package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Vovarama1992/chat-widget/internal/config"
	"github.com/Vovarama1992/chat-widget/internal/logging"
	"github.com/Vovarama1992/chat-widget/internal/responder"
	"github.com/Vovarama1992/chat-widget/internal/storage"
	"github.com/Vovarama1992/chat-widget/internal/widget"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:          "widget",
		Short:        "Embeddable chat widget core",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.API, "api", cfg.API, "backend base URL set at the mount point")
	pf.StringVar(&cfg.PageURL, "page-url", cfg.PageURL, "host page URL, its ?api= parameter is consulted")
	pf.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage backend: file, memory, postgres, redis")
	pf.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "file storage location")
	pf.StringVar(&cfg.StorageScope, "storage-scope", cfg.StorageScope, "storage partition")
	pf.StringVar(&cfg.Greeting, "greeting", cfg.Greeting, "greeting shown on init, empty to disable")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the host HTTP API for a web page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	serve.Flags().StringVar(&cfg.Port, "port", cfg.Port, "listen port")

	chat := &cobra.Command{
		Use:   "chat",
		Short: "Chat from the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.AddCommand(serve, chat)
	return root
}

type app struct {
	svc    widget.Service
	closer io.Closer
	log    zerolog.Logger
}

func buildApp(ctx context.Context, cfg *config.Config, presenter widget.Presenter) (*app, error) {
	log := logging.New(cfg.LogLevel, os.Stderr)

	// --- Storage ---
	kv, closer, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		// behave like a browser with storage disabled
		log.Warn().Err(err).Str("storage", cfg.Storage).Msg("storage unavailable, continuing without persistence")
		kv = storage.Unavailable()
	}
	store := storage.FailClosed(kv, log)

	// --- Widget core ---
	backend := widget.Resolve(ctx, cfg.LocatorInputs(), store)
	svc, err := widget.NewService(
		backend,
		widget.NewSessionStore(store),
		widget.NewHTTPBackend(cfg.HTTPTimeout),
		presenter,
		log,
		widget.Options{
			Mock:     responder.NewMock(cfg.MockDelay),
			Fallback: responder.NewFallback(cfg.FallbackDelay),
			Greeting: cfg.Greeting,
		},
	)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	return &app{svc: svc, closer: closer, log: log}, nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	transcript := widget.NewTranscript()
	a, err := buildApp(ctx, cfg, transcript)
	if err != nil {
		return err
	}
	defer a.closer.Close()

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	widget.RegisterRoutes(r, widget.NewHandler(a.svc, transcript, a.log))

	// --- health ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	a.svc.Init()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("port", cfg.Port).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.Error().Err(err).Msg("shutdown")
		}
	}

	a.svc.Wait()
	return nil
}

func runChat(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	a, err := buildApp(ctx, cfg, widget.NewTerminalPresenter(out))
	if err != nil {
		return err
	}
	defer a.closer.Close()

	a.svc.Toggle()
	a.svc.Init()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		switch line {
		case "/quit":
			a.svc.Wait()
			return nil
		case "/backend":
			// let pending replies print first
			a.svc.Wait()
			url, ok := a.svc.BackendURL()
			if !ok {
				url = "(mock mode)"
			}
			fmt.Fprintln(out, url)
			continue
		}
		if url, ok := strings.CutPrefix(line, "/backend "); ok {
			a.svc.Override(url)
			continue
		}
		a.svc.Send(line)
	}

	a.svc.Wait()
	return scanner.Err()
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpadapter "svw.info/isopuzzle/internal/adapters/http"
	"svw.info/isopuzzle/internal/config"
	"svw.info/isopuzzle/internal/ctxlog"
	"svw.info/isopuzzle/internal/generator"
	"svw.info/isopuzzle/internal/hint"
	"svw.info/isopuzzle/internal/host"
	"svw.info/isopuzzle/internal/hub"
	"svw.info/isopuzzle/internal/infrastructure/storage"
	"svw.info/isopuzzle/internal/level"
	"svw.info/isopuzzle/internal/ports"
	"svw.info/isopuzzle/internal/usecase"
	"svw.info/isopuzzle/internal/validator"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Flush keeps the event stream working through the middleware.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// requestLogger logs method, path, status, bytes, and duration, and puts
// the logger on the request context.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r.WithContext(ctxlog.WithLogger(r.Context(), logger)))
		logger.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

func newLogger(levelStr, formatStr string, out io.Writer) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

func loadConfig(fs *flag.FlagSet, args []string) (*config.Config, error) {
	path := fs.String("config", "", "YAML or HCL config file")
	dotenv := fs.String("env-file", ".env", "dotenv file with ISOPUZZLE_* overrides")
	addr := fs.String("addr", "", "listen address")
	levelStr := fs.String("log-level", "", "debug|info|warn|error")
	format := fs.String("log-format", "", "text|json")
	seed := fs.Int64("seed", 0, "level seed (0 = time based)")
	fps := fs.Int("fps", 0, "game loop ticks per second")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if *path != "" {
		var err error
		if cfg, err = config.LoadFromPath(*path); err != nil {
			return nil, err
		}
	}
	lookup, err := config.EnvLookup(*dotenv)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	// explicit flags win
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Server.Addr = *addr
		case "log-level":
			cfg.Log.Level = *levelStr
		case "log-format":
			cfg.Log.Format = *format
		case "seed":
			cfg.Game.Seed = *seed
		case "fps":
			cfg.Game.FPS = *fps
		}
	})
	return cfg, cfg.Validate()
}

func main() {
	cfg, err := loadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	logger := newLogger(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err := run(cfg, logger); err != nil {
		logger.Error("exit", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = ctxlog.WithLogger(ctx, logger)

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Wire providers → use case → loop → HTTP adapter
	levels := level.New(level.Config{
		BaseNodes: cfg.Game.BaseNodes,
		Params:    cfg.Game.Params(),
		Seed:      seed,
	}, generator.NewConnectedGenerator(cfg.Game.MaxAttempts), validator.New(), ports.SystemClock{})
	uc := usecase.NewService(levels, storage.NewMemory(), hint.NewHighestDegree())
	if _, err := uc.Start(ctx); err != nil {
		return fmt.Errorf("start level: %w", err)
	}

	stream := hub.New(logger)
	loop := host.New(uc, stream, cfg.Game.FPS)

	mux := http.NewServeMux()
	httpadapter.New(loop, uc, stream).Register(mux)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go stream.Run(hubCtx)

	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr, "seed", seed, "base_nodes", cfg.Game.BaseNodes, "fps", cfg.Game.FPS)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		if err != nil {
			return err
		}
	case err := <-loopDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	case <-ctx.Done():
	}

	// End open streams before Shutdown waits on them.
	stopHub()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("stopped", "level", loop.Snapshot().Level)
	return nil
}

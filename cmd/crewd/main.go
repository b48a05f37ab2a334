package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourcegraph/conc"

	server "github.com/pragyakeshap/awesome-docker-experiments/internal"
	"github.com/pragyakeshap/awesome-docker-experiments/internal/agent"
	"github.com/pragyakeshap/awesome-docker-experiments/internal/config"
	"github.com/pragyakeshap/awesome-docker-experiments/internal/dispatch"
	"github.com/pragyakeshap/awesome-docker-experiments/internal/taskstore"
	"github.com/pragyakeshap/awesome-docker-experiments/pkg/clog"
	"github.com/pragyakeshap/awesome-docker-experiments/pkg/panicerr"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}

	// Setup logger
	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttrsHandler(handler)))

	// Setup agent registry
	agents := agent.Builtin()
	defaultType := env.DefaultAgentType
	if env.AgentsPath != "" {
		var rosterDefault string
		agents, rosterDefault, err = agent.LoadRoster(env.AgentsPath)
		if err != nil {
			slog.Error("failed to load agent roster", "path", env.AgentsPath, "error", err)
			os.Exit(1)
		}
		if rosterDefault != "" {
			defaultType = rosterDefault
		}
	}
	registry, err := agent.NewRegistry(agents, defaultType)
	if err != nil {
		slog.Error("failed to build agent registry", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// Setup task store
	var store taskstore.Store
	switch env.StoreEnv.Type {
	case "redis":
		store, err = taskstore.NewRedisStore(ctx, taskstore.RedisConfig{
			Addr:     env.RedisAddr,
			Password: env.RedisPassword,
			DB:       env.RedisDB,
		})
		if err != nil {
			slog.Error("failed to connect to redis", "addr", env.RedisAddr, "error", err)
			os.Exit(1)
		}
		slog.Info("connected to redis", "addr", env.RedisAddr)
	default:
		store = taskstore.NewMemoryStore(
			taskstore.WithSweepInterval(env.SweepInterval),
		)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	// Setup dispatcher and servers
	dispatcher := dispatch.New(registry, &agent.SimExecutor{Delay: env.SimulateDelay}, store,
		dispatch.WithTTL(env.TaskTTL),
		dispatch.WithExecutionTimeout(env.ExecuteTimeout),
	)
	taskServer := dispatch.NewServer(dispatcher)
	agentServer := agent.NewServer(registry)
	srv := server.NewServer(env, taskServer, agentServer, registry, store)

	wg := conc.NewWaitGroup()
	wg.Go(func() {
		if err := panicerr.SafeContext(srv.ListenAndServe)(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			cancel()
		}
	})

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	wg.Wait()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gorm.io/gorm"

	"todoapp/internal/apiclient"
	"todoapp/internal/appserver"
	"todoapp/internal/command"
	"todoapp/internal/config"
	"todoapp/internal/db"
	"todoapp/internal/global"
	"todoapp/internal/lifecycle"
	"todoapp/internal/localapi"
	"todoapp/internal/logging"
	"todoapp/internal/service"
	"todoapp/internal/taskstore"
	"todoapp/internal/tui"
	"todoapp/internal/view"
)

var version = "dev"
var buildTime = "unknown"

const shutdownTimeout = 3 * time.Second

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := command.BuildApp(command.Deps{
		LoadConfig: config.LoadConfig,
		RunServe: func(ctx context.Context, cfg config.Config) error {
			return runServe(ctx, os.Stdout, cfg)
		},
		RunMigrateUp: runMigrateUp,
		RunTasks: func(ctx context.Context, req command.TasksRequest) error {
			return runTasks(ctx, os.Stdin, os.Stdout, req)
		},
		RunUI: runUI,
		RunWatch: func(ctx context.Context, req command.ClientRequest) error {
			return runWatch(ctx, os.Stdout, req)
		},
	})

	if err := app.RunContext(rootCtx, os.Args); err != nil {
		logging.NewLogger(logging.Options{Level: "error", Writer: os.Stderr, Component: "todoapp"}).Error("todoapp failed", "err", err)
		os.Exit(1)
	}
}

func newRuntimeLogger(writer io.Writer, cfg config.Config) *slog.Logger {
	return logging.NewLogger(logging.Options{
		Level:     cfg.LogLevel,
		Writer:    writer,
		Component: "todoapp",
	})
}

func runMigrateUp(_ context.Context, cfg config.Config) error {
	lg := newRuntimeLogger(os.Stderr, cfg)
	gdb, err := db.OpenSQLiteGORM(cfg.DBDSN, db.WithLogger(lg.With("module", "db")))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	return db.Close(gdb)
}

// buildServer wires store, service, API and front door. The returned close
// func releases the store.
func buildServer(cfg config.Config, lg *slog.Logger) (http.Handler, func() error, error) {
	gdb, err := db.OpenSQLiteGORM(cfg.DBDSN, db.WithLogger(lg.With("module", "db")))
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	closeDB := func() error { return db.Close(gdb) }

	handler, err := buildHandler(gdb, cfg, lg)
	if err != nil {
		_ = closeDB()
		return nil, nil, err
	}
	return handler, closeDB, nil
}

func buildHandler(gdb *gorm.DB, cfg config.Config, lg *slog.Logger) (http.Handler, error) {
	store, err := taskstore.NewStore(gdb)
	if err != nil {
		return nil, err
	}
	api := localapi.NewServer(localapi.Deps{
		Tasks:  service.New(store),
		Logger: lg.With("module", "localapi"),
	})
	api.SetExternalEventSink(func(topic, taskID string, _ map[string]any) {
		lg.Debug("task event", "module", "events", "op", topic, "task_id", taskID)
	})
	front, err := appserver.NewServer(appserver.Deps{
		API: api.Handler(),
		WebUI: appserver.WebUIConfig{
			Mode:        cfg.WebUIMode,
			DevProxyURL: cfg.WebUIDevProxyURL,
			DistDir:     cfg.WebUIDistDir,
		},
	})
	if err != nil {
		return nil, err
	}
	return front.Handler(), nil
}

func runServe(ctx context.Context, out io.Writer, cfg config.Config) error {
	lg := newRuntimeLogger(os.Stderr, cfg)
	handler, closeStore, err := buildServer(cfg, lg)
	if err != nil {
		return err
	}
	lg.Info("store ready", "dsn", cfg.DBDSN)

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		_ = closeStore()
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	_, _ = fmt.Fprintf(out, "todoapp server listening at http://%s (version=%s built=%s)\n", ln.Addr(), version, buildTime)

	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	mgr := lifecycle.NewManager(lg.With("module", "lifecycle"))
	mgr.AddRun("http-server", func(runCtx context.Context) error {
		go func() {
			<-runCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = httpServer.Shutdown(shutdownCtx)
		}()
		err := httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	mgr.AddShutdown("http-server-shutdown", func(context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	mgr.AddShutdown("close-store", func(context.Context) error {
		return closeStore()
	})
	return mgr.StartAndWait(ctx)
}

func newClient(req command.ClientRequest) (*apiclient.Client, global.ClientConfig, error) {
	cc, err := command.ResolveClientConfig(req.Config, req.ServerURL)
	if err != nil {
		return nil, global.ClientConfig{}, err
	}
	client := apiclient.New(cc.ServerURL)
	if err := client.Validate(); err != nil {
		return nil, global.ClientConfig{}, err
	}
	return client, cc, nil
}

func runTasks(ctx context.Context, in io.Reader, out io.Writer, req command.TasksRequest) error {
	client, cc, err := newClient(req.ClientRequest)
	if err != nil {
		return err
	}
	styles := view.DefaultStyles()
	return command.ExecTasks(ctx, client, req, cc, command.TaskIO{In: in, Out: out, Styles: &styles})
}

func runUI(ctx context.Context, req command.ClientRequest) error {
	client, cc, err := newClient(req)
	if err != nil {
		return err
	}
	m := tui.New(ctx, client, tui.Options{Filter: cc.Filter(), ConfirmDelete: cc.ConfirmDelete})
	return tui.Run(ctx, m, client.Subscribe)
}

func runWatch(ctx context.Context, out io.Writer, req command.ClientRequest) error {
	client, _, err := newClient(req)
	if err != nil {
		return err
	}
	return command.ExecWatch(ctx, client.Subscribe, out)
}

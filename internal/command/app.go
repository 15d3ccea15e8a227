package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"todoapp/internal/config"
)

type Deps struct {
	LoadConfig   func() config.Config
	RunServe     func(context.Context, config.Config) error
	RunMigrateUp func(context.Context, config.Config) error
	RunTasks     func(context.Context, TasksRequest) error
	RunUI        func(context.Context, ClientRequest) error
	RunWatch     func(context.Context, ClientRequest) error
}

// ClientRequest is what every client-side command receives. ServerURL is
// the --server flag and may be empty.
type ClientRequest struct {
	Config    config.Config
	ServerURL string
}

type TasksRequest struct {
	ClientRequest
	Op     string
	Args   []string
	Filter string
	Yes    bool
}

const (
	OpList   = "list"
	OpAdd    = "add"
	OpEdit   = "edit"
	OpToggle = "toggle"
	OpRemove = "rm"
	OpClear  = "clear"
)

func serverFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "server",
		Usage: "task server base URL (overrides TODOAPP_SERVER_URL and config.toml)",
	}
}

func BuildApp(deps Deps) *cli.App {
	return &cli.App{
		Name:  "todoapp",
		Usage: "minimal task tracker",
		Action: func(ctx *cli.Context) error {
			return runServe(ctx.Context, deps, loadConfig(deps))
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the task server",
				Action: func(ctx *cli.Context) error {
					return runServe(ctx.Context, deps, loadConfig(deps))
				},
			},
			{
				Name:  "migrate",
				Usage: "run database migration",
				Subcommands: []*cli.Command{
					{
						Name:  "up",
						Usage: "apply pending migrations",
						Action: func(ctx *cli.Context) error {
							return runMigrateUp(ctx.Context, deps, loadConfig(deps))
						},
					},
				},
			},
			{
				Name:  "tasks",
				Usage: "work with tasks on a running server",
				Flags: []cli.Flag{serverFlag()},
				Subcommands: []*cli.Command{
					{
						Name:  OpList,
						Usage: "print the task list",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "filter", Usage: "all, active or completed"},
						},
						Action: tasksAction(deps, OpList, 0),
					},
					{
						Name:      OpAdd,
						Usage:     "add a task",
						ArgsUsage: "TITLE",
						Action:    tasksAction(deps, OpAdd, 1),
					},
					{
						Name:      OpEdit,
						Usage:     "rename a task",
						ArgsUsage: "ID TITLE",
						Action:    tasksAction(deps, OpEdit, 2),
					},
					{
						Name:      OpToggle,
						Usage:     "flip a task between active and completed",
						ArgsUsage: "ID",
						Action:    tasksAction(deps, OpToggle, 1),
					},
					{
						Name:      OpRemove,
						Usage:     "delete a task",
						ArgsUsage: "ID",
						Flags: []cli.Flag{
							&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip the confirmation prompt"},
						},
						Action: tasksAction(deps, OpRemove, 1),
					},
					{
						Name:   OpClear,
						Usage:  "delete every completed task",
						Action: tasksAction(deps, OpClear, 0),
					},
				},
			},
			{
				Name:  "ui",
				Usage: "open the interactive terminal UI",
				Flags: []cli.Flag{serverFlag()},
				Action: func(ctx *cli.Context) error {
					return runClient(ctx.Context, "ui", deps.RunUI, clientRequest(ctx, deps))
				},
			},
			{
				Name:  "watch",
				Usage: "print task events as they happen",
				Flags: []cli.Flag{serverFlag()},
				Action: func(ctx *cli.Context) error {
					return runClient(ctx.Context, "watch", deps.RunWatch, clientRequest(ctx, deps))
				},
			},
		},
	}
}

func tasksAction(deps Deps, op string, minArgs int) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if ctx.NArg() < minArgs {
			return fmt.Errorf("usage: todoapp tasks %s %s", op, ctx.Command.ArgsUsage)
		}
		if deps.RunTasks == nil {
			return errors.New("tasks runner is not configured")
		}
		return deps.RunTasks(ctx.Context, TasksRequest{
			ClientRequest: clientRequest(ctx, deps),
			Op:            op,
			Args:          ctx.Args().Slice(),
			Filter:        ctx.String("filter"),
			Yes:           ctx.Bool("yes"),
		})
	}
}

// clientRequest picks up --server from the command or any parent.
func clientRequest(ctx *cli.Context, deps Deps) ClientRequest {
	return ClientRequest{Config: loadConfig(deps), ServerURL: strings.TrimSpace(ctx.String("server"))}
}

func loadConfig(deps Deps) config.Config {
	if deps.LoadConfig != nil {
		return deps.LoadConfig()
	}
	return config.LoadConfig()
}

func runServe(ctx context.Context, deps Deps, cfg config.Config) error {
	if deps.RunServe == nil {
		return errors.New("serve runner is not configured")
	}
	return deps.RunServe(ctx, cfg)
}

func runMigrateUp(ctx context.Context, deps Deps, cfg config.Config) error {
	if deps.RunMigrateUp == nil {
		return errors.New("migrate up runner is not configured")
	}
	return deps.RunMigrateUp(ctx, cfg)
}

func runClient(ctx context.Context, name string, fn func(context.Context, ClientRequest) error, req ClientRequest) error {
	if fn == nil {
		return errors.New(name + " runner is not configured")
	}
	return fn(ctx, req)
}

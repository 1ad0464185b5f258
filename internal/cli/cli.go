package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tiwariParth/go-task-tracker/internal/app"
	"github.com/tiwariParth/go-task-tracker/internal/config"
)

// Color helpers shared by every command.
var (
	Bold   = color.New(color.Bold).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
)

// ErrActionFailed marks an error already reported to the user as a notice.
var ErrActionFailed = errors.New("action failed")

// CLI represents the command-line interface.
type CLI struct {
	app        *app.TodoApp
	cfg        *config.Config
	configPath string
	closer     func() error

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// Option configures a CLI.
type Option func(*CLI)

// WithApp runs commands against a instead of bootstrapping from config.
func WithApp(a *app.TodoApp) Option {
	return func(c *CLI) { c.app = a }
}

// WithConfig uses cfg instead of loading the config file.
func WithConfig(cfg *config.Config) Option {
	return func(c *CLI) { c.cfg = cfg }
}

// WithIO sets the streams commands read from and write to.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(c *CLI) {
		c.in, c.out, c.errOut = in, out, errOut
	}
}

// NewCLI initializes a new CLI.
func NewCLI(opts ...Option) *CLI {
	c := &CLI{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes the CLI based on the provided arguments.
func (c *CLI) Run(args []string) error {
	return c.RunContext(context.Background(), args)
}

// RunContext is Run with a caller-controlled context.
func (c *CLI) RunContext(ctx context.Context, args []string) error {
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	err := root.ExecuteContext(ctx)
	if c.closer != nil {
		if cerr := c.closer(); cerr != nil && err == nil {
			err = fmt.Errorf("close storage: %w", cerr)
		}
		c.closer = nil
	}
	return err
}

// Execute runs args and returns the process exit code. Errors already shown
// as a notice are not printed again.
func (c *CLI) Execute(args []string) int {
	err := c.Run(args)
	if err == nil {
		return 0
	}
	if !errors.Is(err, ErrActionFailed) {
		fmt.Fprintf(c.errOut, "Error: %v\n", err)
	}
	return 1
}

func (c *CLI) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "Track tasks with a date and a status",
		Long: `todo keeps a list of tasks, each with a name, a calendar date and a
status of pending, in-progress or completed. Tasks are saved locally after
every change.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.bootstrap,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $HOME/.todo-cli/config.yaml)")

	root.AddCommand(
		c.addCommand(),
		c.editCommand(),
		c.deleteCommand(),
		c.clearCommand(),
		c.listCommand(),
		c.exportCommand(),
		c.serveCommand(),
		c.shellCommand(),
	)
	return root
}

func (c *CLI) bootstrap(cmd *cobra.Command, _ []string) error {
	if c.cfg == nil {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}
	if c.app != nil {
		return nil
	}

	logger := config.NewLogger(c.cfg.Log, c.errOut)
	a, closer, err := app.Bootstrap(cmd.Context(), c.cfg, logger)
	if err != nil {
		return err
	}
	c.app, c.closer = a, closer
	return nil
}

func (c *CLI) printNotice(n app.Notice) {
	if n.Message == "" {
		return
	}
	if n.Kind == app.Success {
		fmt.Fprintln(c.out, Green(n.Message))
		return
	}
	fmt.Fprintln(c.out, Red(n.Message))
}

// report prints the notice of an action and folds err into ErrActionFailed.
func (c *CLI) report(n app.Notice, err error) error {
	c.printNotice(n)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrActionFailed, err)
	}
	return nil
}

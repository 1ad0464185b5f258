package cli

import (
	"bufio"
	"errors"
	"fmt"
	"html"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tiwariParth/go-task-tracker/internal/app"
	"github.com/tiwariParth/go-task-tracker/internal/config"
	"github.com/tiwariParth/go-task-tracker/internal/models"
	"github.com/tiwariParth/go-task-tracker/internal/server"
	"github.com/tiwariParth/go-task-tracker/internal/storage"
	"github.com/tiwariParth/go-task-tracker/internal/view"
)

func (c *CLI) addCommand() *cobra.Command {
	var date, status string

	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := c.app.NewForm()
			if date == "" {
				date = form.Date
			}
			if status == "" {
				status = form.Status
			}
			n, err := c.app.Submit(cmd.Context(), models.Input{
				Name:   strings.Join(args, " "),
				Date:   date,
				Status: status,
			})
			return c.report(n, err)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "task date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&status, "status", "", "one of "+statusChoices()+" (default pending)")
	return cmd
}

func statusChoices() string {
	names := make([]string, len(models.Statuses))
	for i, s := range models.Statuses {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

func (c *CLI) editCommand() *cobra.Command {
	var in models.Input

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's name, date or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == (models.Input{}) {
				return errors.New("nothing to change: pass --name, --date or --status")
			}
			n, err := c.app.Edit(cmd.Context(), args[0], in)
			return c.report(n, err)
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "new name")
	cmd.Flags().StringVar(&in.Date, "date", "", "new date, YYYY-MM-DD")
	cmd.Flags().StringVar(&in.Status, "status", "", "new status, one of "+statusChoices())
	return cmd
}

func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.app.Delete(cmd.Context(), args[0])
			return c.report(n, err)
		},
	}
}

func (c *CLI) clearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reader := bufio.NewReader(c.in)
			n, err := c.app.DeleteAll(cmd.Context(), func() bool {
				return yes || c.confirm(reader, "Are you sure you want to delete all tasks?")
			})
			switch {
			case errors.Is(err, app.ErrNothingToDelete):
				c.printNotice(n)
				return nil
			case errors.Is(err, app.ErrNotConfirmed):
				fmt.Fprintln(c.out, "Cancelled.")
				return nil
			}
			return c.report(n, err)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (c *CLI) confirm(reader *bufio.Reader, question string) bool {
	fmt.Fprintf(c.out, "%s [y/N] ", question)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func (c *CLI) listCommand() *cobra.Command {
	var date, status string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, newest first",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			v, err := c.app.Filter(date, status)
			if err != nil {
				return err
			}
			return c.printView(v)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "only tasks on this date, YYYY-MM-DD")
	cmd.Flags().StringVar(&status, "status", "", "only tasks with this status, one of "+statusChoices())
	return cmd
}

func (c *CLI) printView(v view.View) error {
	if v.Empty != "" {
		fmt.Fprintln(c.out, v.Empty)
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, Bold("#\tID\tNAME\tDATE\tSTATUS"))
	for _, row := range v.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			row.Index,
			row.ID,
			html.UnescapeString(row.Name),
			row.Date,
			colorStatus(row),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if v.Filtered {
		fmt.Fprintf(c.out, "%d of %d tasks\n", len(v.Rows), v.Total)
	}
	return nil
}

func colorStatus(row view.Row) string {
	switch row.StatusClass {
	case "status-completed":
		return Green(row.Status)
	case "status-in-progress":
		return Cyan(row.Status)
	default:
		return Yellow(row.Status)
	}
}

func (c *CLI) exportCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks as JSON or CSV",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := storage.Export(c.app.Tasks(), format)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = c.out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(c.out, "Exported %d tasks to %s\n", len(c.app.Tasks()), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	return cmd
}

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task list over a local HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.cfg.ListenAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := config.NewLogger(c.cfg.Log, c.errOut)
			fmt.Fprintf(c.out, "Serving tasks on http://%s\n", addr)
			return server.New(c.app, server.WithLogger(logger)).Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tiwariParth/go-task-tracker/internal/app"
	"github.com/tiwariParth/go-task-tracker/internal/models"
)

const shellHelp = "Available commands: add, edit, delete, clear, list, filter, unfilter, exit"

func (c *CLI) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Manage tasks interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.shell(cmd.Context())
		},
	}
}

// shell runs a prompt loop until "exit" or end of input.
func (c *CLI) shell(ctx context.Context) error {
	fmt.Fprintln(c.out, Bold("Welcome to the task tracker!"))
	reader := bufio.NewReader(c.in)

	for {
		command, err := c.prompt(reader, "> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch command {
		case "":
			continue

		case "add":
			form := c.app.NewForm()
			c.fillForm(reader, &form)
			n, _ := c.app.Submit(ctx, formInput(form))
			c.printNotice(n)

		case "edit":
			id, _ := c.prompt(reader, "Enter task ID to edit: ")
			form, err := c.app.BeginEdit(id)
			if err != nil {
				fmt.Fprintln(c.out, Red("Task not found."))
				continue
			}
			c.fillForm(reader, &form)
			n, err := c.app.Submit(ctx, formInput(form))
			if errors.Is(err, models.ErrValidation) {
				c.app.CancelEdit()
			}
			c.printNotice(n)

		case "delete":
			id, _ := c.prompt(reader, "Enter task ID to delete: ")
			n, _ := c.app.Delete(ctx, id)
			c.printNotice(n)

		case "clear":
			n, err := c.app.DeleteAll(ctx, func() bool {
				return c.confirm(reader, "Are you sure you want to delete all tasks?")
			})
			if errors.Is(err, app.ErrNotConfirmed) {
				fmt.Fprintln(c.out, "Cancelled.")
				continue
			}
			c.printNotice(n)

		case "list":
			if err := c.printView(c.app.View()); err != nil {
				return err
			}

		case "filter":
			date, _ := c.prompt(reader, "Date (YYYY-MM-DD, blank for any): ")
			status, _ := c.prompt(reader, "Status (blank for any): ")
			v, err := c.app.Filter(date, status)
			if err != nil {
				fmt.Fprintln(c.out, Red(err.Error()))
				continue
			}
			if err := c.printView(v); err != nil {
				return err
			}

		case "unfilter":
			if err := c.printView(c.app.ClearFilter()); err != nil {
				return err
			}

		case "exit", "quit":
			fmt.Fprintln(c.out, "Goodbye!")
			return nil

		default:
			fmt.Fprintln(c.out, "Unknown command. "+shellHelp)
		}
	}
}

// fillForm prompts for each field, keeping the current value on blank input.
func (c *CLI) fillForm(reader *bufio.Reader, form *app.Form) {
	if v, _ := c.prompt(reader, fieldPrompt("Task name", form.Name)); v != "" {
		form.Name = v
	}
	if v, _ := c.prompt(reader, fieldPrompt("Date", form.Date)); v != "" {
		form.Date = v
	}
	if v, _ := c.prompt(reader, fieldPrompt("Status", form.Status)); v != "" {
		form.Status = v
	}
}

func fieldPrompt(label, current string) string {
	if current == "" {
		return label + ": "
	}
	return fmt.Sprintf("%s [%s]: ", label, current)
}

func formInput(f app.Form) models.Input {
	return models.Input{Name: f.Name, Date: f.Date, Status: f.Status}
}

func (c *CLI) prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return line, err
	}
	return line, nil
}

package main

import (
	"os"

	"github.com/tiwariParth/go-task-tracker/internal/cli"
)

func main() {
	app := cli.NewCLI()

	// Run CLI with command-line arguments
	os.Exit(app.Execute(os.Args[1:]))
}

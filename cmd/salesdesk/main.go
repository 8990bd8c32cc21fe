package main

import (
	"context"
	"fmt"
	"os"

	"github.com/andy/salesdesk/internal/app"
	"github.com/andy/salesdesk/internal/cli"
)

func main() {
	// Help never needs the database, and opening it may prompt for a password
	skipInit := false
	for _, a := range os.Args[1:] {
		if a == "-h" || a == "--help" || a == "help" || a == "completion" {
			skipInit = true
			break
		}
	}

	if !skipInit {
		a, err := app.New(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
			os.Exit(1)
		}
		cli.SetApp(a)

		err = cli.Execute()
		a.Close()
		if err != nil {
			os.Exit(1)
		}
		return
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

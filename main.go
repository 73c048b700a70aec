package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/lineage/cmd"
	"github.com/thenoetrevino/lineage/internal/cli"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		var cmdErr *cli.CommandError
		if errors.As(err, &cmdErr) {
			os.Exit(cmdErr.Code)
		}
		// cobra reports bad flags, arguments and unknown commands this way
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitUsage)
	}
}

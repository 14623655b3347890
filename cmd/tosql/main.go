// Command tosql runs SQL over tabular text read from files or standard input.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/nao1215/tosql/cmd/tosql/commands"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.NewRootCommand(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

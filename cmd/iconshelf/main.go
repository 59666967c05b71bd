package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		Exitf("Error: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var err error
	switch args[0] {
	case "generate":
		err = runGenerate(ctx, args[1:], stdout, stderr)
	case "serve":
		err = runServe(ctx, args[1:], stderr)
	case "search":
		err = runSearch(ctx, args[1:], stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "iconshelf %s\n", version)
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `iconshelf - An SVG icon catalog and browser built with Go, Echo, and templ

Usage:
  iconshelf <command> [flags]

Commands:
  generate      Build icons-metadata.json from the icon source tree
  serve         Serve the catalog, the icons, and the browse UI
  search        Search the catalog from the command line
  version       Print the iconshelf version
  help          Show this help message

Examples:
  iconshelf generate
  iconshelf generate -source assets/icons -output public/icons-metadata.json
  iconshelf serve -addr :8080
  iconshelf search -size 16 -tag brand github
  iconshelf search -copy path arrow up`)
}

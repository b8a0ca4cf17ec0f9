package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "foxtrack: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		printUsage(stdout)
		return fmt.Errorf("no command given")
	}

	command, rest := args[0], args[1:]
	switch command {
	case "downsample":
		return handleDownsample(rest, stdout)
	case "import":
		return handleImport(rest, stdout)
	case "token":
		return handleToken(rest, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stdout)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `foxtrack - fox GPS telemetry tools

Usage: foxtrack <command> [options]

Commands:
  downsample  Downsample a CSV export per subject and print or export the result
  import      Load a CSV export into the database
  token       Mint a bearer token for the import endpoint
  help        Show this help message

Run "foxtrack <command> -h" for the options of a command.`)
}

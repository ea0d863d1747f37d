package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/vsinha/pharmacy/pkg/interfaces/cli/commands"
)

type command interface {
	Execute(ctx context.Context) error
}

func main() {
	var cmd command
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "session":
			cmd = sessionCommand(os.Args[2:])
		case "generate":
			cmd = generateCommand(os.Args[2:])
		}
	}
	if cmd == nil {
		cmd = simulateCommand()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func simulateCommand() command {
	var (
		inventoryFile = flag.String("inventory", "", "Path to drugs CSV file")
		days          = flag.Int("days", 30, "Number of days to simulate")
		format        = flag.String("format", "text", "Output format: text, json, csv, svg")
		outputDir     = flag.String("output", "", "Output directory for results (optional)")
		encoding      = flag.String("encoding", "utf-8", "Input encoding: utf-8, shift_jis")
		alertType     = flag.String("alerts", "", "Only report alerts of this type")
		strict        = flag.Bool("strict", false, "Reject drugs without a registered behavior")
		verbose       = flag.Bool("verbose", false, "Enable structured logging")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	return commands.NewSimulateCommand(commands.Config{
		InventoryFile: *inventoryFile,
		Days:          *days,
		Format:        *format,
		OutputDir:     *outputDir,
		Encoding:      *encoding,
		AlertType:     *alertType,
		Strict:        *strict,
		Verbose:       *verbose,
		Help:          *help,
	})
}

func sessionCommand(args []string) command {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	var (
		inventoryFile = fs.String("inventory", "", "Path to drugs CSV file")
		encoding      = fs.String("encoding", "utf-8", "Input encoding: utf-8, shift_jis")
		strict        = fs.Bool("strict", false, "Reject drugs without a registered behavior")
		verbose       = fs.Bool("verbose", false, "Enable structured logging")
		help          = fs.Bool("help", false, "Show help message")
	)

	fs.Parse(args)

	return commands.NewSessionCommand(commands.SessionConfig{
		InventoryFile: *inventoryFile,
		Encoding:      *encoding,
		Strict:        *strict,
		Verbose:       *verbose,
		Help:          *help,
	})
}

func generateCommand(args []string) command {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		drugs        = fs.Int("drugs", 0, "Number of drug batches to generate")
		unknownRatio = fs.Float64("unknown", 0.2, "Share of generic drugs without a registered behavior")
		maxExpiry    = fs.Int("max-expiry", 30, "Upper bound for the initial expires_in")
		outputDir    = fs.String("output", "", "Output directory for drugs.csv")
		seed         = fs.Int64("seed", 0, "Random seed for reproducible generation")
		verbose      = fs.Bool("verbose", false, "Enable verbose output")
		help         = fs.Bool("help", false, "Show help message")
	)

	fs.Parse(args)

	return commands.NewGenerateCommand(commands.GenerateConfig{
		Drugs:        *drugs,
		UnknownRatio: *unknownRatio,
		MaxExpiry:    *maxExpiry,
		OutputDir:    *outputDir,
		Seed:         *seed,
		Verbose:      *verbose,
		Help:         *help,
	})
}

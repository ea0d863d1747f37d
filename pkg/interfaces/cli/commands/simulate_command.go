package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/vsinha/pharmacy/pkg/application/services/pharmacy"
	"github.com/vsinha/pharmacy/pkg/domain/entities"
	"github.com/vsinha/pharmacy/pkg/infrastructure/events"
	"github.com/vsinha/pharmacy/pkg/interfaces/cli/output"
)

// Config holds configuration for the simulate command
type Config struct {
	InventoryFile string
	Days          int
	Format        string
	OutputDir     string
	Encoding      string
	AlertType     string
	Strict        bool
	Verbose       bool
	Help          bool
}

// SimulateCommand runs a fixed number of ticks over a CSV inventory
type SimulateCommand struct {
	config     Config
	out        io.Writer
	logger     *zap.Logger
	alertTypes []entities.AlertType
}

// NewSimulateCommand creates a new simulate command with the given configuration
func NewSimulateCommand(config Config) *SimulateCommand {
	return &SimulateCommand{
		config: config,
		out:    os.Stdout,
	}
}

// WithOutput redirects command output
func (c *SimulateCommand) WithOutput(w io.Writer) *SimulateCommand {
	c.out = w
	return c
}

// WithLogger overrides the logger chosen from the verbose flag
func (c *SimulateCommand) WithLogger(logger *zap.Logger) *SimulateCommand {
	c.logger = logger
	return c
}

// Execute runs the simulate command
func (c *SimulateCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	logger := c.logger
	if logger == nil {
		var err error
		if logger, err = newLogger(c.config.Verbose); err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync()
	}

	inv, err := loadInventory(c.config.InventoryFile, c.config.Encoding, c.config.Strict, logger)
	if err != nil {
		return err
	}

	alertLogger := &events.HandlerFunc{
		Types: []string{events.AlertRaisedEvent},
		Fn: func(event events.Event) error {
			raised := event.Data().(events.AlertRaised)
			logger.Info("alert raised",
				zap.String("type", string(raised.Alert.Type)),
				zap.String("name", raised.Alert.DrugName),
				zap.String("batch_number", raised.Alert.BatchNumber),
				zap.Int("stock", raised.Alert.Stock),
				zap.Int("expires_in", raised.Alert.ExpiresIn))
			return nil
		},
	}
	if err := inv.eventStore.Subscribe(alertLogger.Types, alertLogger); err != nil {
		return fmt.Errorf("failed to subscribe alert logger: %w", err)
	}

	logger.Info("running simulation", zap.Int("days", c.config.Days))
	result, err := pharmacy.Simulate(ctx, inv.pharmacy, c.config.Days)
	if err != nil {
		return fmt.Errorf("error running simulation: %w", err)
	}
	logger.Info("simulation completed",
		zap.Int("days", c.config.Days),
		zap.Int("alerts", len(result.Alerts)),
		zap.Duration("elapsed", result.SimulationTime))

	if len(c.alertTypes) > 0 {
		result.Alerts = inv.pharmacy.Alerts(c.alertTypes...)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Writer:    c.out,
	}
	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// validateInputs validates the command configuration and keeps the parsed alert filter
func (c *SimulateCommand) validateInputs() error {
	if c.config.InventoryFile == "" {
		return fmt.Errorf("must specify -inventory CSV file")
	}
	if c.config.Days < 0 {
		return fmt.Errorf("days cannot be negative, got %d", c.config.Days)
	}
	c.alertTypes = nil
	if c.config.AlertType != "" {
		alertType, err := entities.ParseAlertType(c.config.AlertType)
		if err != nil {
			return err
		}
		c.alertTypes = []entities.AlertType{alertType}
	}
	return nil
}

// showHelp displays the help message
func (c *SimulateCommand) showHelp() {
	fmt.Fprintf(c.out, `Pharmacy CLI - daily benefit and expiry simulation for drug inventory

USAGE:
    pharmacy -inventory <file> [options]      # Run a simulation
    pharmacy session -inventory <file>        # Step through days interactively
    pharmacy generate -output <dir> [options] # Generate a random inventory

OPTIONS:
    -inventory <file>   Path to drugs CSV file
    -days <n>           Number of days to simulate (default: 30)
    -format <fmt>       Output format: text, json, csv, svg (default: text)
    -output <dir>       Output directory for results (required for csv and svg)
    -encoding <enc>     Input encoding: utf-8, shift_jis (default: utf-8)
    -alerts <type>      Only report alerts of this type: LOW_STOCK, EXPIRING_SOON
    -strict             Reject drugs without a registered behavior
    -verbose            Enable structured logging
    -help               Show this help message

CSV FILE FORMAT:

drugs.csv:
    name,category,expires_in,benefit,stock,reorder_point
    Magic Pill,Supplement,15,40,12,
    Herbal Tea,Herbal,10,5,30,10
    Fervex,Antipyretic,12,35,2,
    Dafalgan,Analgesic,20,30,8,5

    Empty stock defaults to 0, empty reorder_point to 5.

DRUG TYPES:
    Magic Pill   never changes
    Herbal Tea   gains 1 benefit per day, 2 once expired
    Fervex       gains 1, 2 within 10 days, 3 within 5 days, 0 once expired
    Dafalgan     loses 2 benefit per day, 4 once expired
    (other)      loses 1 benefit per day, 2 once expired

EXAMPLES:
    # Simulate 30 days
    pharmacy -inventory drugs.csv

    # Write a benefit chart for 60 days
    pharmacy -inventory drugs.csv -days 60 -format svg -output results/

    # Only report low stock alerts as JSON
    pharmacy -inventory drugs.csv -format json -alerts LOW_STOCK
`)
}

package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/pharmacy/pkg/domain/entities"
)

// SessionConfig holds configuration for the interactive session
type SessionConfig struct {
	InventoryFile string
	Encoding      string
	Strict        bool
	Verbose       bool
	Help          bool
}

// SessionCommand steps a pharmacy through days one command at a time
type SessionCommand struct {
	config SessionConfig
	in     io.Reader
	out    io.Writer
	inv    *inventory
	day    int
}

// NewSessionCommand creates an interactive session reading from stdin
func NewSessionCommand(config SessionConfig) *SessionCommand {
	return &SessionCommand{
		config: config,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// WithIO replaces stdin and stdout
func (c *SessionCommand) WithIO(in io.Reader, out io.Writer) *SessionCommand {
	c.in = in
	c.out = out
	return c
}

// Execute loads the inventory and runs the session until quit or end of input
func (c *SessionCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.printHelp()
		return nil
	}

	logger, err := newLogger(c.config.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	c.inv, err = loadInventory(c.config.InventoryFile, c.config.Encoding, c.config.Strict, logger)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	return c.runInteractiveSession(ctx, logger)
}

func (c *SessionCommand) runInteractiveSession(ctx context.Context, logger *zap.Logger) error {
	fmt.Fprintln(c.out, "=== Pharmacy Session ===")
	fmt.Fprintln(c.out, "Type 'help' for available commands")
	fmt.Fprintln(c.out)

	scanner := bufio.NewScanner(c.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, "pharmacy> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		quit, err := c.processCommand(line)
		if err != nil {
			logger.Debug("session command failed", zap.String("line", line), zap.Error(err))
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
		if quit {
			fmt.Fprintln(c.out, "Goodbye!")
			return nil
		}
		fmt.Fprintln(c.out)
	}

	return scanner.Err()
}

func (c *SessionCommand) processCommand(line string) (bool, error) {
	parts := strings.Fields(line)
	command := parts[0]
	args := parts[1:]

	switch command {
	case "help", "h":
		c.printInteractiveHelp()
	case "tick", "t":
		return false, c.handleTick(args)
	case "status", "s":
		c.handleStatus()
	case "show":
		return false, c.handleShow(args)
	case "alerts", "a":
		return false, c.handleAlerts(args)
	case "clear":
		c.inv.pharmacy.ClearAlerts()
		fmt.Fprintln(c.out, "Alerts cleared")
	case "events":
		return false, c.handleEvents(args)
	case "quit", "q", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command: %s (type 'help' for available commands)", command)
	}
	return false, nil
}

func (c *SessionCommand) handleTick(args []string) error {
	days := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid day count: %s", args[0])
		}
		days = n
	}

	before := len(c.inv.pharmacy.Alerts())
	for i := 0; i < days; i++ {
		c.inv.pharmacy.Tick()
		c.day++
	}
	fmt.Fprintf(c.out, "Day %d: %d new alerts\n", c.day, len(c.inv.pharmacy.Alerts())-before)
	return nil
}

func (c *SessionCommand) handleStatus() {
	fmt.Fprintf(c.out, "=== Day %d ===\n", c.day)
	fmt.Fprintf(c.out, "%-15s %-22s %-10s %-8s %-8s\n", "Name", "Batch", "Expires", "Benefit", "Stock")
	for _, drug := range c.inv.pharmacy.Drugs() {
		fmt.Fprintf(c.out, "%-15s %-22s %-10d %-8d %-8d\n",
			drug.Name, drug.BatchNumber, drug.ExpiresIn, drug.Benefit, drug.Stock)
	}
}

func (c *SessionCommand) handleShow(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: show <drug name>")
	}
	name := strings.Join(args, " ")

	drugs, err := c.inv.catalog.GetDrugsByName(name)
	if err != nil {
		return err
	}
	if len(drugs) == 0 {
		return fmt.Errorf("no drug named %q", name)
	}

	for _, drug := range drugs {
		behavior := "registered"
		if !c.inv.pharmacy.Registered(drug.Name) {
			behavior = "default decay"
		}
		fmt.Fprintf(c.out, "%s [%s] %s: expires in %d, benefit %d, stock %d/%d, %s\n",
			drug.Name, drug.Category, drug.BatchNumber,
			drug.ExpiresIn, drug.Benefit, drug.Stock, drug.ReorderPoint, behavior)
	}
	return nil
}

func (c *SessionCommand) handleAlerts(args []string) error {
	var types []entities.AlertType
	for _, arg := range args {
		alertType, err := entities.ParseAlertType(strings.ToUpper(arg))
		if err != nil {
			return err
		}
		types = append(types, alertType)
	}

	alerts := c.inv.pharmacy.Alerts(types...)
	fmt.Fprintf(c.out, "%d alerts\n", len(alerts))
	for _, alert := range alerts {
		fmt.Fprintf(c.out, "  %-15s %-15s %-22s stock %d, expires in %d\n",
			alert.Type, alert.DrugName, alert.BatchNumber, alert.Stock, alert.ExpiresIn)
	}
	return nil
}

func (c *SessionCommand) handleEvents(args []string) error {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid event count: %s", args[0])
		}
		limit = n
	}

	all, err := c.inv.eventStore.ReadAllEvents(0)
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}
	if len(all) > limit {
		all = all[len(all)-limit:]
	}

	for _, event := range all {
		fmt.Fprintf(c.out, "  %-15s %-22s v%d\n", event.Type(), event.StreamID(), event.Version())
	}
	return nil
}

func (c *SessionCommand) printInteractiveHelp() {
	fmt.Fprint(c.out, `Available commands:
  tick [n]              Advance n days (default 1)
  status                Show every drug
  show <name>           Show every batch of a drug
  alerts [type...]      List alerts, optionally LOW_STOCK or EXPIRING_SOON
  clear                 Clear recorded alerts
  events [n]            Show the last n events (default 10)
  quit                  Exit the session
`)
}

func (c *SessionCommand) printHelp() {
	fmt.Fprint(c.out, `Pharmacy Session - step through days interactively

USAGE:
    pharmacy session -inventory <file> [options]

OPTIONS:
    -inventory <file>   Path to drugs CSV file
    -encoding <enc>     Input encoding: utf-8, shift_jis (default: utf-8)
    -strict             Reject drugs without a registered behavior
    -verbose            Enable structured logging
    -help               Show this help message
`)
	fmt.Fprintln(c.out)
	c.printInteractiveHelp()
}

package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vsinha/pharmacy/pkg/domain/entities"
)

// GenerateConfig holds configuration for inventory generation
type GenerateConfig struct {
	Drugs        int     // Number of drug batches to generate
	UnknownRatio float64 // Share of batches given a name with no registered behavior
	MaxExpiry    int     // Upper bound for the initial expires_in
	OutputDir    string  // Output directory for drugs.csv
	Seed         int64   // Random seed for reproducible generation
	Help         bool    // Show help
	Verbose      bool    // Verbose output
}

// GenerateCommand writes a random drugs.csv
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
	out    io.Writer
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.MaxExpiry <= 0 {
		config.MaxExpiry = 30
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
		out:    os.Stdout,
	}
}

var knownDrugs = []struct {
	name     string
	category entities.Category
}{
	{entities.MagicPill, entities.Supplement},
	{entities.HerbalTea, entities.Herbal},
	{entities.Fervex, entities.Antipyretic},
	{entities.Dafalgan, entities.Analgesic},
}

var genericDrugs = []string{"Aspirin", "Ibuprofen", "Paracetamol", "Vitamin C", "Loratadine", "Omeprazole"}

// WithOutput redirects progress and help output
func (cmd *GenerateCommand) WithOutput(w io.Writer) *GenerateCommand {
	cmd.out = w
	return cmd
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}

	if cmd.config.Drugs <= 0 {
		return fmt.Errorf("validation error: drugs must be positive, got %d", cmd.config.Drugs)
	}
	if cmd.config.UnknownRatio < 0 || cmd.config.UnknownRatio > 1 {
		return fmt.Errorf("validation error: unknown ratio must be between 0 and 1, got %v", cmd.config.UnknownRatio)
	}
	if cmd.config.OutputDir == "" {
		return fmt.Errorf("validation error: output directory is required")
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.out, "🔧 Generating %d drug batches (%.0f%% generic)\n",
			cmd.config.Drugs, cmd.config.UnknownRatio*100)
		fmt.Fprintf(cmd.out, "📁 Output directory: %s\n", cmd.config.OutputDir)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filePath := filepath.Join(cmd.config.OutputDir, "drugs.csv")
	if err := cmd.generateDrugs(ctx, filePath); err != nil {
		return fmt.Errorf("failed to generate drugs: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.out, "✅ Inventory generated in %s\n", filePath)
	}
	return nil
}

func (cmd *GenerateCommand) generateDrugs(ctx context.Context, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"name", "category", "expires_in", "benefit", "stock", "reorder_point"}); err != nil {
		return err
	}

	for i := 0; i < cmd.config.Drugs; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		name, category := cmd.generateName()
		record := []string{
			name,
			category.String(),
			strconv.Itoa(cmd.rand.Intn(cmd.config.MaxExpiry+1) - 2),
			strconv.Itoa(cmd.rand.Intn(entities.MaxBenefit + 1)),
			strconv.Itoa(cmd.rand.Intn(40)),
			strconv.Itoa(entities.DefaultReorderPoint + cmd.rand.Intn(6)),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// generateName picks a registered drug type, or a generic one at UnknownRatio
func (cmd *GenerateCommand) generateName() (string, entities.Category) {
	if cmd.rand.Float64() < cmd.config.UnknownRatio {
		return genericDrugs[cmd.rand.Intn(len(genericDrugs))], entities.Other
	}
	drug := knownDrugs[cmd.rand.Intn(len(knownDrugs))]
	return drug.name, drug.category
}

func (cmd *GenerateCommand) printHelp() {
	fmt.Fprintln(cmd.out, `Pharmacy Inventory Generator

USAGE:
    pharmacy generate [OPTIONS]

OPTIONS:
    -drugs <N>          Number of drug batches to generate (required)
    -unknown <F>        Share of generic drugs without a registered behavior (default: 0.2)
    -max-expiry <N>     Upper bound for the initial expires_in (default: 30)
    -output <DIR>       Output directory for drugs.csv (required)
    -seed <N>           Random seed for reproducible generation (optional)
    -verbose            Enable verbose output
    -help               Show this help message

EXAMPLES:
    # Generate a small inventory
    pharmacy generate -drugs 20 -output ./inventory

    # Generate a reproducible inventory of registered types only
    pharmacy generate -drugs 500 -unknown 0 -output ./inventory -seed 12345`)
}

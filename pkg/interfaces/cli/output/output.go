package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/vsinha/pharmacy/pkg/application/dto"
	"github.com/vsinha/pharmacy/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Writer receives stdout output; nil means os.Stdout
	Writer io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Generate creates output in the specified format
func Generate(result *dto.SimulationResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	case "svg":
		return generateSVGOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// Summary holds aggregate figures for the final state of a run
type Summary struct {
	Drugs          int             `json:"drugs"`
	Expired        int             `json:"expired"`
	NeedsReorder   int             `json:"needs_reorder"`
	Unregistered   int             `json:"unregistered"`
	AverageBenefit decimal.Decimal `json:"average_benefit"`
	LowStockAlerts int             `json:"low_stock_alerts"`
	ExpiryAlerts   int             `json:"expiring_soon_alerts"`
}

// Summarize computes the summary for the final drug states
func Summarize(result *dto.SimulationResult) Summary {
	final := result.Final()
	summary := Summary{Drugs: len(final), AverageBenefit: decimal.Zero}

	total := decimal.Zero
	for _, drug := range final {
		total = total.Add(decimal.NewFromInt(int64(drug.Benefit)))
		if drug.ExpiresIn <= 0 {
			summary.Expired++
		}
		if drug.Stock <= drug.ReorderPoint {
			summary.NeedsReorder++
		}
		if !drug.Registered {
			summary.Unregistered++
		}
	}
	if len(final) > 0 {
		summary.AverageBenefit = total.Div(decimal.NewFromInt(int64(len(final)))).Round(2)
	}

	for _, alert := range result.Alerts {
		switch alert.Type {
		case entities.LowStock:
			summary.LowStockAlerts++
		case entities.ExpiringSoon:
			summary.ExpiryAlerts++
		}
	}
	return summary
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.SimulationResult, config Config) error {
	w := config.writer()
	writeText(w, result, config.Verbose)

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		filename := filepath.Join(config.OutputDir, "simulation.txt")
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create text file: %w", err)
		}
		defer file.Close()

		writeText(file, result, config.Verbose)
		if config.Verbose {
			fmt.Fprintf(w, "💾 Results saved to: %s\n", filename)
		}
	}

	return nil
}

func writeText(w io.Writer, result *dto.SimulationResult, verbose bool) {
	summary := Summarize(result)

	fmt.Fprintf(w, "💊 Pharmacy Simulation Summary\n")
	fmt.Fprintf(w, "==============================\n\n")

	fmt.Fprintf(w, "Days Simulated: %d\n", result.Days)
	fmt.Fprintf(w, "Drugs: %d\n", summary.Drugs)
	fmt.Fprintf(w, "Expired: %d\n", summary.Expired)
	fmt.Fprintf(w, "Needs Reorder: %d\n", summary.NeedsReorder)
	fmt.Fprintf(w, "Average Benefit: %s\n", summary.AverageBenefit.StringFixed(2))
	fmt.Fprintf(w, "Alerts: %d (low stock %d, expiring soon %d)\n",
		len(result.Alerts), summary.LowStockAlerts, summary.ExpiryAlerts)
	if verbose {
		fmt.Fprintf(w, "Simulation Time: %v\n", result.SimulationTime)
	}
	fmt.Fprintln(w)

	final := result.Final()
	if len(final) > 0 {
		fmt.Fprintf(w, "📋 Final Inventory:\n")
		fmt.Fprintf(w, "%-15s %-12s %-22s %-10s %-8s %-8s %-8s\n",
			"Name", "Category", "Batch", "Expires", "Benefit", "Stock", "Reorder")
		fmt.Fprintf(w, "%-15s %-12s %-22s %-10s %-8s %-8s %-8s\n",
			"---------------", "------------", "----------------------", "----------", "--------", "--------", "--------")

		for _, drug := range final {
			name := drug.Name
			if !drug.Registered {
				name += "*"
			}
			fmt.Fprintf(w, "%-15s %-12s %-22s %-10d %-8d %-8d %-8d\n",
				name,
				drug.Category,
				drug.BatchNumber,
				drug.ExpiresIn,
				drug.Benefit,
				drug.Stock,
				drug.ReorderPoint)
		}
		if summary.Unregistered > 0 {
			fmt.Fprintf(w, "* unknown drug type, default decay applied\n")
		}
		fmt.Fprintln(w)
	}

	if len(result.Alerts) > 0 {
		fmt.Fprintf(w, "⚠️  Alerts:\n")
		fmt.Fprintf(w, "%-15s %-15s %-22s %-8s %-10s\n",
			"Type", "Name", "Batch", "Stock", "Expires")
		fmt.Fprintf(w, "%-15s %-15s %-22s %-8s %-10s\n",
			"---------------", "---------------", "----------------------", "--------", "----------")

		for _, alert := range result.Alerts {
			fmt.Fprintf(w, "%-15s %-15s %-22s %-8d %-10d\n",
				alert.Type,
				alert.DrugName,
				alert.BatchNumber,
				alert.Stock,
				alert.ExpiresIn)
		}
		fmt.Fprintln(w)
	}
}

type jsonReport struct {
	*dto.SimulationResult
	Summary Summary `json:"summary"`
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.SimulationResult, config Config) error {
	jsonData, err := json.MarshalIndent(jsonReport{SimulationResult: result, Summary: Summarize(result)}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	w := config.writer()
	if config.OutputDir == "" {
		fmt.Fprintln(w, string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "simulation.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(w, "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput creates CSV output
func generateCSVOutput(result *dto.SimulationResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	historyFile := filepath.Join(config.OutputDir, "drug_history.csv")
	if err := writeHistoryCSV(result, historyFile); err != nil {
		return fmt.Errorf("failed to write drug history CSV: %w", err)
	}

	alertsFile := filepath.Join(config.OutputDir, "alerts.csv")
	if err := writeAlertsCSV(result.Alerts, alertsFile); err != nil {
		return fmt.Errorf("failed to write alerts CSV: %w", err)
	}

	if config.Verbose {
		w := config.writer()
		fmt.Fprintf(w, "💾 CSV results saved to:\n")
		fmt.Fprintf(w, "  Drug History: %s\n", historyFile)
		fmt.Fprintf(w, "  Alerts: %s\n", alertsFile)
	}

	return nil
}

// generateSVGOutput writes the benefit chart
func generateSVGOutput(result *dto.SimulationResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for SVG format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "benefit_chart.svg")
	svg := NewBenefitChart(result).GenerateSVG(result)
	if err := os.WriteFile(filename, []byte(svg), 0644); err != nil {
		return fmt.Errorf("failed to write SVG file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 Benefit chart saved to: %s\n", filename)
	}
	return nil
}

// writeHistoryCSV writes one row per drug per day, day 0 being the initial state
func writeHistoryCSV(result *dto.SimulationResult, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"day", "name", "batch_number", "expires_in", "benefit", "stock", "reorder_point"}); err != nil {
		return err
	}

	writeDay := func(day int, drugs []dto.DrugState) error {
		for _, drug := range drugs {
			record := []string{
				strconv.Itoa(day),
				drug.Name,
				drug.BatchNumber,
				strconv.Itoa(drug.ExpiresIn),
				strconv.Itoa(drug.Benefit),
				strconv.Itoa(drug.Stock),
				strconv.Itoa(drug.ReorderPoint),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeDay(0, result.Initial); err != nil {
		return err
	}
	for _, snapshot := range result.Snapshots {
		if err := writeDay(snapshot.Day, snapshot.Drugs); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeAlertsCSV(alerts []entities.Alert, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"type", "name", "batch_number", "stock", "reorder_point", "expires_in", "timestamp"}); err != nil {
		return err
	}
	for _, alert := range alerts {
		record := []string{
			string(alert.Type),
			alert.DrugName,
			alert.BatchNumber,
			strconv.Itoa(alert.Stock),
			strconv.Itoa(alert.ReorderPoint),
			strconv.Itoa(alert.ExpiresIn),
			alert.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

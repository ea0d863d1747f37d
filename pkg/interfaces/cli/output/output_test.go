package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/pharmacy/pkg/application/dto"
	"github.com/vsinha/pharmacy/pkg/domain/entities"
)

func sampleResult() *dto.SimulationResult {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return &dto.SimulationResult{
		Days: 2,
		Initial: []dto.DrugState{
			{Name: "Fervex", Category: "Antipyretic", BatchNumber: "FER-1", ExpiresIn: 2, Benefit: 10, Stock: 2, ReorderPoint: 5, Registered: true},
			{Name: "Aspirin", Category: "Analgesic", BatchNumber: "ASP-1", ExpiresIn: 30, Benefit: 9, Stock: 20, ReorderPoint: 5},
		},
		Snapshots: []dto.DaySnapshot{
			{Day: 1, Drugs: []dto.DrugState{
				{Name: "Fervex", Category: "Antipyretic", BatchNumber: "FER-1", ExpiresIn: 1, Benefit: 13, Stock: 2, ReorderPoint: 5, Registered: true},
				{Name: "Aspirin", Category: "Analgesic", BatchNumber: "ASP-1", ExpiresIn: 29, Benefit: 8, Stock: 20, ReorderPoint: 5},
			}},
			{Day: 2, Drugs: []dto.DrugState{
				{Name: "Fervex", Category: "Antipyretic", BatchNumber: "FER-1", ExpiresIn: 0, Benefit: 16, Stock: 2, ReorderPoint: 5, Registered: true},
				{Name: "Aspirin", Category: "Analgesic", BatchNumber: "ASP-1", ExpiresIn: 28, Benefit: 7, Stock: 20, ReorderPoint: 5},
			}},
		},
		Alerts: []entities.Alert{
			{Type: entities.LowStock, DrugName: "Fervex", BatchNumber: "FER-1", Stock: 2, ReorderPoint: 5, ExpiresIn: 1, Timestamp: at},
			{Type: entities.ExpiringSoon, DrugName: "Fervex", BatchNumber: "FER-1", Stock: 2, ReorderPoint: 5, ExpiresIn: 1, Timestamp: at},
			{Type: entities.LowStock, DrugName: "Fervex", BatchNumber: "FER-1", Stock: 2, ReorderPoint: 5, ExpiresIn: 0, Timestamp: at},
			{Type: entities.ExpiringSoon, DrugName: "Fervex", BatchNumber: "FER-1", Stock: 2, ReorderPoint: 5, ExpiresIn: 0, Timestamp: at},
		},
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleResult())

	expected := Summary{
		Drugs:          2,
		Expired:        1,
		NeedsReorder:   1,
		Unregistered:   1,
		AverageBenefit: decimal.RequireFromString("11.5"),
		LowStockAlerts: 2,
		ExpiryAlerts:   2,
	}
	opt := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	if diff := cmp.Diff(expected, summary, opt); diff != "" {
		t.Errorf("Unexpected summary (-want +got):\n%s", diff)
	}
}

func TestSummarize_Rounding(t *testing.T) {
	result := &dto.SimulationResult{Initial: []dto.DrugState{{Benefit: 1}, {Benefit: 1}, {Benefit: 2}}}
	assert.Equal(t, "1.33", Summarize(result).AverageBenefit.StringFixed(2))

	empty := Summarize(&dto.SimulationResult{})
	assert.True(t, empty.AverageBenefit.IsZero())
}

func TestGenerate_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleResult(), Config{Format: "text", Writer: &buf}))

	out := buf.String()
	assert.Contains(t, out, "Days Simulated: 2")
	assert.Contains(t, out, "Average Benefit: 11.50")
	assert.Contains(t, out, "Alerts: 4 (low stock 2, expiring soon 2)")
	assert.Contains(t, out, "Aspirin*")
	assert.Contains(t, out, "unknown drug type, default decay applied")
	assert.Contains(t, out, "EXPIRING_SOON")
}

func TestGenerate_TextToFile(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleResult(), Config{Format: "text", OutputDir: dir, Writer: &buf}))

	saved, err := os.ReadFile(filepath.Join(dir, "simulation.txt"))
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(saved))
}

func TestGenerate_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleResult(), Config{Format: "json", Writer: &buf}))

	var decoded struct {
		Days      int               `json:"days"`
		Snapshots []dto.DaySnapshot `json:"snapshots"`
		Alerts    []entities.Alert  `json:"alerts"`
		Summary   struct {
			Expired        int    `json:"expired"`
			AverageBenefit string `json:"average_benefit"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.Days)
	assert.Len(t, decoded.Snapshots, 2)
	assert.Len(t, decoded.Alerts, 4)
	assert.Equal(t, 1, decoded.Summary.Expired)
	assert.Equal(t, "11.5", decoded.Summary.AverageBenefit)
}

func TestGenerate_JSONToFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(sampleResult(), Config{Format: "json", OutputDir: dir, Writer: &bytes.Buffer{}}))

	_, err := os.Stat(filepath.Join(dir, "simulation.json"))
	assert.NoError(t, err)
}

func TestGenerate_CSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(sampleResult(), Config{Format: "csv", OutputDir: dir}))

	history := readCSV(t, filepath.Join(dir, "drug_history.csv"))
	require.Len(t, history, 1+2*3)
	assert.Equal(t, []string{"day", "name", "batch_number", "expires_in", "benefit", "stock", "reorder_point"}, history[0])
	assert.Equal(t, []string{"0", "Fervex", "FER-1", "2", "10", "2", "5"}, history[1])
	assert.Equal(t, []string{"2", "Aspirin", "ASP-1", "28", "7", "20", "5"}, history[6])

	alerts := readCSV(t, filepath.Join(dir, "alerts.csv"))
	require.Len(t, alerts, 5)
	assert.Equal(t, "LOW_STOCK", alerts[1][0])
	assert.Equal(t, "2024-03-01T09:00:00.000Z", alerts[1][6])
}

func TestGenerate_RequiresOutputDir(t *testing.T) {
	for _, format := range []string{"csv", "svg"} {
		err := Generate(sampleResult(), Config{Format: format})
		require.Error(t, err, format)
		assert.Contains(t, err.Error(), "output directory required")
	}
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	err := Generate(sampleResult(), Config{Format: "xml"})
	require.Error(t, err)
	assert.Equal(t, "unsupported output format: xml", err.Error())
}

func TestGenerate_SVG(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(sampleResult(), Config{Format: "svg", OutputDir: dir}))

	data, err := os.ReadFile(filepath.Join(dir, "benefit_chart.svg"))
	require.NoError(t, err)
	svg := string(data)
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Equal(t, 2, strings.Count(svg, "<polyline"))
	assert.Contains(t, svg, "Aspirin (ASP-1)")
}

func TestBenefitChart_Points(t *testing.T) {
	chart := &BenefitChart{Width: 200, Height: 150, MarginLeft: 50, MarginTop: 25, MarginRight: 50, MarginBottom: 25, Days: 10}

	assert.Equal(t, "50,125", chart.point(0, entities.MinBenefit))
	assert.Equal(t, "150,25", chart.point(10, entities.MaxBenefit))
	assert.Equal(t, "100,75", chart.point(5, 25))
}

func TestBenefitChart_PointsOutOfRangeStayInPlot(t *testing.T) {
	chart := &BenefitChart{Width: 200, Height: 150, MarginLeft: 50, MarginTop: 25, MarginRight: 50, MarginBottom: 25, Days: 10}

	assert.Equal(t, "100,25", chart.point(5, 80))
	assert.Equal(t, "100,125", chart.point(5, -20))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

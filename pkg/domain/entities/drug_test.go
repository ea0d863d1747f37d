package entities

import (
	"errors"
	"regexp"
	"testing"
	"time"
)

func TestDrug_Validation(t *testing.T) {
	validDrug, err := NewDrug("Doliprane", 20, 30, Analgesic)
	if err != nil {
		t.Fatalf("Expected valid drug creation to succeed: %v", err)
	}
	if validDrug.Stock != 0 {
		t.Errorf("Expected default stock 0, got %d", validDrug.Stock)
	}
	if validDrug.ReorderPoint != DefaultReorderPoint {
		t.Errorf("Expected default reorder point %d, got %d", DefaultReorderPoint, validDrug.ReorderPoint)
	}
	if validDrug.BatchNumber == "" {
		t.Error("Expected batch number to be assigned")
	}

	_, err = NewDrug("", 20, 30, Analgesic)
	if err == nil {
		t.Fatal("Expected error for empty name, but got none")
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestDrug_UncheckedFields(t *testing.T) {
	// Category, stock and reorder point are accepted as given
	drug, err := NewDrug("Odd", -3, 70, Category(99), WithStock(-1), WithReorderPoint(-2))
	if err != nil {
		t.Fatalf("Expected creation to succeed: %v", err)
	}
	if drug.Stock != -1 || drug.ReorderPoint != -2 {
		t.Errorf("Expected stock -1 and reorder point -2, got %d and %d", drug.Stock, drug.ReorderPoint)
	}
	if drug.Category.String() != "Other" {
		t.Errorf("Expected unknown category to print as Other, got %s", drug.Category)
	}
}

func TestParseDrug(t *testing.T) {
	drug, err := ParseDrug("Fervex", " 12 ", "30", Antipyretic, WithStock(8))
	if err != nil {
		t.Fatalf("Expected parse to succeed: %v", err)
	}
	if drug.ExpiresIn != 12 || drug.Benefit != 30 || drug.Stock != 8 {
		t.Errorf("Unexpected drug values: %+v", drug)
	}

	testCases := []struct {
		name        string
		drugName    string
		expiresIn   string
		benefit     string
		expectError string
	}{
		{"non-numeric expiry", "Fervex", "soon", "30", `expires in must be an integer, got "soon": invalid argument`},
		{"non-numeric benefit", "Fervex", "12", "high", `benefit must be an integer, got "high": invalid argument`},
		{"fractional benefit", "Fervex", "12", "1.5", `benefit must be an integer, got "1.5": invalid argument`},
		{"empty name", "", "12", "30", "drug name cannot be empty: invalid argument"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDrug(tc.drugName, tc.expiresIn, tc.benefit, Other)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Expected ErrInvalidArgument, got %v", err)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestDrug_Predicates(t *testing.T) {
	testCases := []struct {
		name         string
		expiresIn    int
		stock        int
		reorderPoint int
		reorder      bool
		expiringSoon bool
		expired      bool
	}{
		{"healthy", 30, 20, 5, false, false, false},
		{"at reorder point", 30, 5, 5, true, false, false},
		{"below reorder point", 30, 3, 5, true, false, false},
		{"expiring at threshold", 7, 20, 5, false, true, false},
		{"one day outside threshold", 8, 20, 5, false, false, false},
		{"expired today", 0, 20, 5, false, true, true},
		{"long expired", -12, 0, 5, true, true, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			drug, err := NewDrug("Test", tc.expiresIn, 10, Other,
				WithStock(tc.stock), WithReorderPoint(tc.reorderPoint))
			if err != nil {
				t.Fatalf("Failed to create drug: %v", err)
			}
			if got := drug.NeedsReorder(); got != tc.reorder {
				t.Errorf("Expected NeedsReorder %v, got %v", tc.reorder, got)
			}
			if got := drug.IsExpiringSoon(); got != tc.expiringSoon {
				t.Errorf("Expected IsExpiringSoon %v, got %v", tc.expiringSoon, got)
			}
			if got := drug.IsExpired(); got != tc.expired {
				t.Errorf("Expected IsExpired %v, got %v", tc.expired, got)
			}
		})
	}
}

func TestNewBatchNumber(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^[A-Z0-9]+-[0-9A-Z]+-[0-9A-F]{12}$`)

	testCases := []struct {
		name   string
		prefix string
	}{
		{"Magic Pill", "MAG"},
		{"Herbal Tea", "HER"},
		{"Ab", "AB"},
		{" ", "DRG"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			batch := NewBatchNumber(tc.name, createdAt)
			if !pattern.MatchString(batch) {
				t.Errorf("Batch number %q does not match expected format", batch)
			}
			if batch[:len(tc.prefix)+1] != tc.prefix+"-" {
				t.Errorf("Expected prefix %s, got %s", tc.prefix, batch)
			}
		})
	}

	first := NewBatchNumber("Fervex", createdAt)
	second := NewBatchNumber("Fervex", createdAt)
	if first == second {
		t.Errorf("Expected random suffix to differ, both were %s", first)
	}
}

func TestNewDrug_UsesClock(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	drug, err := NewDrug("Dafalgan", 5, 10, Analgesic, WithClock(func() time.Time { return createdAt }))
	if err != nil {
		t.Fatalf("Failed to create drug: %v", err)
	}
	if !drug.CreatedAt.Equal(createdAt) {
		t.Errorf("Expected created at %v, got %v", createdAt, drug.CreatedAt)
	}
}

func TestParseCategory(t *testing.T) {
	testCases := []struct {
		label    string
		expected Category
	}{
		{"Analgesic", Analgesic},
		{" antipyretic ", Antipyretic},
		{"SUPPLEMENT", Supplement},
		{"herbal", Herbal},
		{"vaccine", Other},
		{"", Other},
	}

	for _, tc := range testCases {
		if got := ParseCategory(tc.label); got != tc.expected {
			t.Errorf("ParseCategory(%q): expected %s, got %s", tc.label, tc.expected, got)
		}
	}
}

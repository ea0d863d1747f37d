package commands

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/pharmacy/pkg/application/services/pharmacy"
	"github.com/vsinha/pharmacy/pkg/domain/entities"
	"github.com/vsinha/pharmacy/pkg/domain/rules"
	"github.com/vsinha/pharmacy/pkg/infrastructure/events"
	"github.com/vsinha/pharmacy/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/pharmacy/pkg/infrastructure/repositories/memory"
)

// newLogger returns a production logger when verbose, a no-op logger otherwise
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewProduction()
}

// inventory is a loaded catalog and the pharmacy built over it
type inventory struct {
	catalog    *memory.DrugRepository
	pharmacy   *pharmacy.Pharmacy
	eventStore *events.InMemoryEventStore
}

// loadInventory reads the drugs file and builds a pharmacy over its contents.
// With strict set, drugs without a registered behavior are rejected.
func loadInventory(filename, encoding string, strict bool, logger *zap.Logger) (*inventory, error) {
	if filename == "" {
		return nil, fmt.Errorf("must specify -inventory CSV file")
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("inventory file not found: %s", filename)
	}

	loader, err := csv.NewLoader(encoding)
	if err != nil {
		return nil, err
	}

	drugs, err := loader.LoadDrugs(filename)
	if err != nil {
		return nil, fmt.Errorf("error loading drugs: %w", err)
	}
	logger.Info("drugs loaded", zap.String("file", filename), zap.Int("count", len(drugs)))

	registry := rules.NewRegistry()
	if strict {
		if err := validateDrugTypes(drugs, registry); err != nil {
			return nil, err
		}
	}

	catalog := memory.NewDrugRepository(len(drugs))
	if err := catalog.LoadDrugs(drugs); err != nil {
		return nil, fmt.Errorf("failed to load drugs into repository: %w", err)
	}

	ordered, err := catalog.GetAllDrugs()
	if err != nil {
		return nil, err
	}

	eventStore := events.NewInMemoryEventStore()
	p, err := pharmacy.NewPharmacy(ordered,
		pharmacy.WithRegistry(registry),
		pharmacy.WithLogger(logger),
		pharmacy.WithEventStore(eventStore),
	)
	if err != nil {
		return nil, err
	}

	return &inventory{catalog: catalog, pharmacy: p, eventStore: eventStore}, nil
}

// validateDrugTypes rejects names that would silently fall back to default decay
func validateDrugTypes(drugs []*entities.Drug, registry *rules.Registry) error {
	var unknown []string
	seen := make(map[string]bool)
	for _, drug := range drugs {
		if !registry.IsRegistered(drug.Name) && !seen[drug.Name] {
			seen[drug.Name] = true
			unknown = append(unknown, drug.Name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown drug types %s (registered: %s): %w",
			strings.Join(unknown, ", "),
			strings.Join(registry.Names(), ", "),
			entities.ErrInvalidArgument)
	}
	return nil
}

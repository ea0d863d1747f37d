package memory

import (
	"fmt"

	"github.com/vsinha/pharmacy/pkg/domain/entities"
	"github.com/vsinha/pharmacy/pkg/domain/repositories"
)

// DrugRepository provides in-memory drug storage in insertion order.
// It holds the same pointers it was given so ticks are visible through it.
type DrugRepository struct {
	drugs   []*entities.Drug
	byBatch map[string]int
	byName  map[string][]int
}

// NewDrugRepository creates a new in-memory drug repository
func NewDrugRepository(expectedDrugs int) *DrugRepository {
	return &DrugRepository{
		drugs:   make([]*entities.Drug, 0, expectedDrugs),
		byBatch: make(map[string]int, expectedDrugs),
		byName:  make(map[string][]int),
	}
}

// Verify interface compliance
var _ repositories.DrugRepository = (*DrugRepository)(nil)

// LoadDrugs loads drugs into the repository, stopping at the first duplicate
func (r *DrugRepository) LoadDrugs(drugs []*entities.Drug) error {
	for i, drug := range drugs {
		if err := r.SaveDrug(drug); err != nil {
			return fmt.Errorf("drug %d: %w", i+1, err)
		}
	}
	return nil
}

// SaveDrug adds a drug to the repository
func (r *DrugRepository) SaveDrug(drug *entities.Drug) error {
	if drug == nil {
		return fmt.Errorf("drug cannot be nil: %w", entities.ErrInvalidArgument)
	}
	if _, exists := r.byBatch[drug.BatchNumber]; exists {
		return fmt.Errorf("duplicate batch number: %s", drug.BatchNumber)
	}
	index := len(r.drugs)
	r.byBatch[drug.BatchNumber] = index
	r.byName[drug.Name] = append(r.byName[drug.Name], index)
	r.drugs = append(r.drugs, drug)
	return nil
}

// GetDrug returns the drug with the given batch number
func (r *DrugRepository) GetDrug(batchNumber string) (*entities.Drug, error) {
	index, exists := r.byBatch[batchNumber]
	if !exists {
		return nil, fmt.Errorf("drug not found: %s", batchNumber)
	}
	return r.drugs[index], nil
}

// GetDrugsByName returns every batch of a drug, oldest first
func (r *DrugRepository) GetDrugsByName(name string) ([]*entities.Drug, error) {
	indexes := r.byName[name]
	drugs := make([]*entities.Drug, 0, len(indexes))
	for _, index := range indexes {
		drugs = append(drugs, r.drugs[index])
	}
	return drugs, nil
}

// GetAllDrugs returns all drugs in insertion order
func (r *DrugRepository) GetAllDrugs() ([]*entities.Drug, error) {
	drugs := make([]*entities.Drug, len(r.drugs))
	copy(drugs, r.drugs)
	return drugs, nil
}

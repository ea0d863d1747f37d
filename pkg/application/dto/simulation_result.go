package dto

import (
	"time"

	"github.com/vsinha/pharmacy/pkg/domain/entities"
)

// DrugState is a point-in-time copy of a drug for reporting
type DrugState struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	BatchNumber  string `json:"batch_number"`
	ExpiresIn    int    `json:"expires_in"`
	Benefit      int    `json:"benefit"`
	Stock        int    `json:"stock"`
	ReorderPoint int    `json:"reorder_point"`
	Registered   bool   `json:"registered"`
}

// NewDrugState copies the reportable fields of a drug
func NewDrugState(drug *entities.Drug, registered bool) DrugState {
	return DrugState{
		Name:         drug.Name,
		Category:     drug.Category.String(),
		BatchNumber:  drug.BatchNumber,
		ExpiresIn:    drug.ExpiresIn,
		Benefit:      drug.Benefit,
		Stock:        drug.Stock,
		ReorderPoint: drug.ReorderPoint,
		Registered:   registered,
	}
}

// DaySnapshot is the state of every drug after one tick
type DaySnapshot struct {
	Day   int         `json:"day"`
	Drugs []DrugState `json:"drugs"`
}

// SimulationResult contains everything produced by a multi-day run
type SimulationResult struct {
	Days           int              `json:"days"`
	Initial        []DrugState      `json:"initial"`
	Snapshots      []DaySnapshot    `json:"snapshots"`
	Alerts         []entities.Alert `json:"alerts"`
	SimulationTime time.Duration    `json:"simulation_time_ns"`
}

// Final returns the drug states after the last tick, or the initial states
// when no tick ran.
func (r *SimulationResult) Final() []DrugState {
	if len(r.Snapshots) == 0 {
		return r.Initial
	}
	return r.Snapshots[len(r.Snapshots)-1].Drugs
}

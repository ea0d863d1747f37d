package pharmacy

import (
	"context"
	"fmt"
	"time"

	"github.com/vsinha/pharmacy/pkg/application/dto"
	"github.com/vsinha/pharmacy/pkg/domain/entities"
)

// Simulate runs days ticks and collects a snapshot after each one.
// Cancellation is checked between ticks; a tick that has started always
// completes.
func Simulate(ctx context.Context, p *Pharmacy, days int) (*dto.SimulationResult, error) {
	if days < 0 {
		return nil, fmt.Errorf("days cannot be negative, got %d: %w", days, entities.ErrInvalidArgument)
	}

	startTime := time.Now()
	result := &dto.SimulationResult{
		Days:      days,
		Initial:   p.states(p.Drugs()),
		Snapshots: make([]dto.DaySnapshot, 0, days),
	}

	for day := 1; day <= days; day++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulation stopped before day %d: %w", day, err)
		}
		result.Snapshots = append(result.Snapshots, dto.DaySnapshot{
			Day:   day,
			Drugs: p.states(p.Tick()),
		})
	}

	result.Alerts = p.Alerts()
	result.SimulationTime = time.Since(startTime)
	return result, nil
}

func (p *Pharmacy) states(drugs []*entities.Drug) []dto.DrugState {
	states := make([]dto.DrugState, len(drugs))
	for i, drug := range drugs {
		states[i] = dto.NewDrugState(drug, p.Registered(drug.Name))
	}
	return states
}

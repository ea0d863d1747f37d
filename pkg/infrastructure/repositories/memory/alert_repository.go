package memory

import (
	"sync"

	"github.com/vsinha/pharmacy/pkg/domain/entities"
	"github.com/vsinha/pharmacy/pkg/domain/repositories"
)

// AlertRepository is an unbounded append-only alert log
type AlertRepository struct {
	alerts []entities.Alert
	mutex  sync.RWMutex
}

// NewAlertRepository creates an empty alert log
func NewAlertRepository() *AlertRepository {
	return &AlertRepository{
		alerts: make([]entities.Alert, 0),
	}
}

// Verify interface compliance
var _ repositories.AlertRepository = (*AlertRepository)(nil)

// Append records an alert
func (r *AlertRepository) Append(alert entities.Alert) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.alerts = append(r.alerts, alert)
	return nil
}

// List returns a copy of the recorded alerts, filtered by type when types are given
func (r *AlertRepository) List(types ...entities.AlertType) ([]entities.Alert, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if len(types) == 0 {
		alerts := make([]entities.Alert, len(r.alerts))
		copy(alerts, r.alerts)
		return alerts, nil
	}

	wanted := make(map[entities.AlertType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	alerts := make([]entities.Alert, 0)
	for _, alert := range r.alerts {
		if wanted[alert.Type] {
			alerts = append(alerts, alert)
		}
	}
	return alerts, nil
}

// Clear drops every recorded alert
func (r *AlertRepository) Clear() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.alerts = make([]entities.Alert, 0)
	return nil
}

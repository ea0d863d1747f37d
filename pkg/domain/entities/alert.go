package entities

import (
	"fmt"
	"time"
)

// AlertType identifies the condition an alert reports
type AlertType string

const (
	LowStock     AlertType = "LOW_STOCK"
	ExpiringSoon AlertType = "EXPIRING_SOON"
)

// ParseAlertType validates an alert type label
func ParseAlertType(s string) (AlertType, error) {
	switch AlertType(s) {
	case LowStock, ExpiringSoon:
		return AlertType(s), nil
	default:
		return "", fmt.Errorf("unknown alert type %q: %w", s, ErrInvalidArgument)
	}
}

// Alert is an immutable record of a condition observed during a tick
type Alert struct {
	Type         AlertType `json:"type"`
	DrugName     string    `json:"drug_name"`
	BatchNumber  string    `json:"batch_number"`
	Stock        int       `json:"stock"`
	ReorderPoint int       `json:"reorder_point"`
	ExpiresIn    int       `json:"expires_in"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewAlert snapshots the drug fields relevant to an alert
func NewAlert(alertType AlertType, drug *Drug, at time.Time) Alert {
	return Alert{
		Type:         alertType,
		DrugName:     drug.Name,
		BatchNumber:  drug.BatchNumber,
		Stock:        drug.Stock,
		ReorderPoint: drug.ReorderPoint,
		ExpiresIn:    drug.ExpiresIn,
		Timestamp:    at,
	}
}

package repositories

import "github.com/vsinha/pharmacy/pkg/domain/entities"

// AlertRepository stores alerts in the order they were raised
type AlertRepository interface {
	Append(alert entities.Alert) error
	// List returns all alerts, or only those of the given types. The result
	// is a copy and may be modified freely.
	List(types ...entities.AlertType) ([]entities.Alert, error)
	Clear() error
}

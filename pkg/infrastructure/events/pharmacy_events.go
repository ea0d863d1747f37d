package events

import (
	"time"

	"github.com/vsinha/pharmacy/pkg/domain/entities"
)

const (
	DrugUpdatedEvent   = "drug.updated"
	AlertRaisedEvent   = "alert.raised"
	AlertsClearedEvent = "alerts.cleared"
)

// PharmacyStream is the stream for events not tied to one batch
const PharmacyStream = "pharmacy"

// DrugUpdated records one drug before and after a tick
type DrugUpdated struct {
	Name            string `json:"name"`
	BatchNumber     string `json:"batch_number"`
	Registered      bool   `json:"registered"`
	BenefitBefore   int    `json:"benefit_before"`
	BenefitAfter    int    `json:"benefit_after"`
	ExpiresInBefore int    `json:"expires_in_before"`
	ExpiresInAfter  int    `json:"expires_in_after"`
}

// AlertRaised carries the recorded alert
type AlertRaised struct {
	Alert entities.Alert `json:"alert"`
}

// AlertsCleared records how many alerts a clear removed
type AlertsCleared struct {
	Count int `json:"count"`
}

func NewDrugUpdatedEvent(update DrugUpdated, at time.Time) Event {
	return NewEvent(DrugUpdatedEvent, update.BatchNumber, update, at)
}

func NewAlertRaisedEvent(alert entities.Alert) Event {
	return NewEvent(AlertRaisedEvent, alert.BatchNumber, AlertRaised{Alert: alert}, alert.Timestamp)
}

func NewAlertsClearedEvent(count int, at time.Time) Event {
	return NewEvent(AlertsClearedEvent, PharmacyStream, AlertsCleared{Count: count}, at)
}

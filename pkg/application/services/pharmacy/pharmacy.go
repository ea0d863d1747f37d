// Package pharmacy applies the per-type update rules to a held sequence of
// drugs and records the alerts each tick produces.
package pharmacy

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/pharmacy/pkg/domain/entities"
	"github.com/vsinha/pharmacy/pkg/domain/repositories"
	"github.com/vsinha/pharmacy/pkg/domain/rules"
	"github.com/vsinha/pharmacy/pkg/infrastructure/events"
	"github.com/vsinha/pharmacy/pkg/infrastructure/repositories/memory"
)

// Pharmacy owns a sequence of drugs and the alert log they feed.
// Tick is a single critical section; drugs must not be mutated elsewhere while
// a tick runs. Events are published after the lock is released, so handlers
// may call back into the pharmacy.
type Pharmacy struct {
	mutex    sync.Mutex
	pending  []pendingEvent
	drugs    []*entities.Drug
	registry *rules.Registry
	alerts   repositories.AlertRepository
	events   events.Publisher
	logger   *zap.Logger
	now      func() time.Time
}

type pendingEvent struct {
	streamID string
	event    events.Event
}

// Option configures a Pharmacy
type Option func(*Pharmacy)

// WithRegistry replaces the default behavior registry
func WithRegistry(registry *rules.Registry) Option {
	return func(p *Pharmacy) { p.registry = registry }
}

// WithAlertRepository replaces the in-memory alert log
func WithAlertRepository(repo repositories.AlertRepository) Option {
	return func(p *Pharmacy) { p.alerts = repo }
}

// WithEventStore publishes drug updates and alerts to the given store
func WithEventStore(publisher events.Publisher) Option {
	return func(p *Pharmacy) { p.events = publisher }
}

// WithLogger sets the logger (default zap.NewNop)
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pharmacy) { p.logger = logger }
}

// WithClock sets the time source used to stamp alerts
func WithClock(now func() time.Time) Option {
	return func(p *Pharmacy) { p.now = now }
}

// NewPharmacy creates a pharmacy over drugs. A nil slice is an empty
// pharmacy; a nil element is rejected. The slice is copied but the drugs are
// not, so ticks mutate the caller's drugs in place.
func NewPharmacy(drugs []*entities.Drug, opts ...Option) (*Pharmacy, error) {
	for i, drug := range drugs {
		if drug == nil {
			return nil, fmt.Errorf("drug at position %d is nil: %w", i, entities.ErrInvalidArgument)
		}
	}

	p := &Pharmacy{
		drugs:    append(make([]*entities.Drug, 0, len(drugs)), drugs...),
		registry: rules.NewRegistry(),
		alerts:   memory.NewAlertRepository(),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Tick applies one update to every drug in storage order, checking alerts
// after each drug, and returns the updated drugs.
func (p *Pharmacy) Tick() []*entities.Drug {
	p.mutex.Lock()
	for _, drug := range p.drugs {
		p.updateDrug(drug)
		p.checkAlerts(drug)
	}
	drugs := p.snapshot()
	pending := p.takePending()
	p.mutex.Unlock()

	p.flush(pending)
	return drugs
}

// CheckAlerts records one alert per condition the drug currently meets
func (p *Pharmacy) CheckAlerts(drug *entities.Drug) {
	p.mutex.Lock()
	p.checkAlerts(drug)
	pending := p.takePending()
	p.mutex.Unlock()

	p.flush(pending)
}

// Alerts returns recorded alerts, optionally filtered by type
func (p *Pharmacy) Alerts(types ...entities.AlertType) []entities.Alert {
	alerts, err := p.alerts.List(types...)
	if err != nil {
		p.logger.Error("failed to list alerts", zap.Error(err))
		return []entities.Alert{}
	}
	return alerts
}

// ClearAlerts empties the alert log. Drugs are untouched.
func (p *Pharmacy) ClearAlerts() {
	p.mutex.Lock()
	count := len(p.Alerts())
	if err := p.alerts.Clear(); err != nil {
		p.mutex.Unlock()
		p.logger.Error("failed to clear alerts", zap.Error(err))
		return
	}
	p.publish(events.PharmacyStream, events.NewAlertsClearedEvent(count, p.now()))
	pending := p.takePending()
	p.mutex.Unlock()

	p.flush(pending)
}

// Drugs returns the held drugs in storage order
func (p *Pharmacy) Drugs() []*entities.Drug {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.snapshot()
}

// Registered reports whether name has its own behavior rather than the default decay
func (p *Pharmacy) Registered(name string) bool {
	return p.registry.IsRegistered(name)
}

func (p *Pharmacy) snapshot() []*entities.Drug {
	drugs := make([]*entities.Drug, len(p.drugs))
	copy(drugs, p.drugs)
	return drugs
}

func (p *Pharmacy) updateDrug(drug *entities.Drug) {
	behavior, registered := p.registry.Lookup(drug.Name)
	if !registered {
		p.logger.Warn("unknown drug type, using default decay",
			zap.String("name", drug.Name),
			zap.String("batch_number", drug.BatchNumber))
	}

	update := events.DrugUpdated{
		Name:            drug.Name,
		BatchNumber:     drug.BatchNumber,
		Registered:      registered,
		BenefitBefore:   drug.Benefit,
		ExpiresInBefore: drug.ExpiresIn,
	}
	behavior.Apply(drug)
	update.BenefitAfter = drug.Benefit
	update.ExpiresInAfter = drug.ExpiresIn

	p.logger.Debug("drug updated",
		zap.String("name", drug.Name),
		zap.Int("benefit", drug.Benefit),
		zap.Int("expires_in", drug.ExpiresIn))
	p.publish(drug.BatchNumber, events.NewDrugUpdatedEvent(update, p.now()))
}

func (p *Pharmacy) checkAlerts(drug *entities.Drug) {
	at := p.now()
	if drug.NeedsReorder() {
		p.raise(entities.NewAlert(entities.LowStock, drug, at))
	}
	if drug.IsExpiringSoon() {
		p.raise(entities.NewAlert(entities.ExpiringSoon, drug, at))
	}
}

func (p *Pharmacy) raise(alert entities.Alert) {
	if err := p.alerts.Append(alert); err != nil {
		p.logger.Error("failed to record alert",
			zap.String("type", string(alert.Type)),
			zap.String("name", alert.DrugName),
			zap.Error(err))
		return
	}
	p.publish(alert.BatchNumber, events.NewAlertRaisedEvent(alert))
}

// publish queues an event; callers holding the mutex flush after unlocking
func (p *Pharmacy) publish(streamID string, event events.Event) {
	if p.events == nil {
		return
	}
	p.pending = append(p.pending, pendingEvent{streamID: streamID, event: event})
}

func (p *Pharmacy) takePending() []pendingEvent {
	pending := p.pending
	p.pending = nil
	return pending
}

// flush must run without the mutex held
func (p *Pharmacy) flush(pending []pendingEvent) {
	for _, e := range pending {
		if err := p.events.AppendEvent(e.streamID, e.event); err != nil {
			p.logger.Warn("event handler failed",
				zap.String("event_type", e.event.Type()),
				zap.String("stream", e.streamID),
				zap.Error(err))
		}
	}
}

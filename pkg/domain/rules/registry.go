package rules

import (
	"fmt"
	"sort"

	"github.com/vsinha/pharmacy/pkg/domain/entities"
)

// Registry is an exact-match mapping from drug name to Behavior with a
// fallback for names that were never registered.
type Registry struct {
	behaviors map[string]Behavior
	fallback  Behavior
}

// NewRegistry returns a registry seeded with the known drug types
func NewRegistry() *Registry {
	r := &Registry{
		behaviors: make(map[string]Behavior, 4),
		fallback:  DefaultBehavior,
	}
	r.behaviors[entities.MagicPill] = MagicPillBehavior
	r.behaviors[entities.HerbalTea] = HerbalTeaBehavior
	r.behaviors[entities.Fervex] = FervexBehavior
	r.behaviors[entities.Dafalgan] = DafalganBehavior
	return r
}

// Register adds or replaces the behavior for a drug name
func (r *Registry) Register(name string, behavior Behavior) error {
	if name == "" {
		return fmt.Errorf("behavior name cannot be empty: %w", entities.ErrInvalidArgument)
	}
	if behavior.UpdateBenefit == nil || behavior.UpdateExpiration == nil {
		return fmt.Errorf("behavior %q must define both transitions: %w", name, entities.ErrInvalidArgument)
	}
	r.behaviors[name] = behavior
	return nil
}

// Lookup always returns a behavior. The boolean is false when the name is
// not registered and the default decay was returned instead.
func (r *Registry) Lookup(name string) (Behavior, bool) {
	if behavior, ok := r.behaviors[name]; ok {
		return behavior, true
	}
	return r.fallback, false
}

// IsRegistered reports whether name has its own behavior
func (r *Registry) IsRegistered(name string) bool {
	_, ok := r.behaviors[name]
	return ok
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.behaviors))
	for name := range r.behaviors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

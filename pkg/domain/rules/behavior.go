// Package rules maps drug type names to the transitions applied on each tick.
package rules

import "github.com/vsinha/pharmacy/pkg/domain/entities"

// BenefitFunc computes the next benefit from the current benefit and the
// expiry value as it was before the tick.
type BenefitFunc func(benefit, expiresIn int) int

// ExpirationFunc computes the next expiry value
type ExpirationFunc func(expiresIn int) int

// Behavior is the pair of transitions governing one drug type
type Behavior struct {
	UpdateBenefit    BenefitFunc
	UpdateExpiration ExpirationFunc
}

// Apply mutates the drug in place. Benefit must be computed against the
// pre-tick expiry, so it always runs first.
func (b Behavior) Apply(drug *entities.Drug) {
	drug.Benefit = b.UpdateBenefit(drug.Benefit, drug.ExpiresIn)
	drug.ExpiresIn = b.UpdateExpiration(drug.ExpiresIn)
}

func unchangedBenefit(benefit, _ int) int { return benefit }

func unchangedExpiration(expiresIn int) int { return expiresIn }

func decrementExpiration(expiresIn int) int { return expiresIn - 1 }

// rate returns the live step, doubled once the drug has expired
func rate(step, expiresIn int) int {
	if expiresIn > 0 {
		return step
	}
	return step * 2
}

// clampBenefit bounds a computed benefit to [MinBenefit, MaxBenefit]
func clampBenefit(benefit int) int {
	return min(max(benefit, entities.MinBenefit), entities.MaxBenefit)
}

func herbalTeaBenefit(benefit, expiresIn int) int {
	return clampBenefit(benefit + rate(1, expiresIn))
}

func fervexBenefit(benefit, expiresIn int) int {
	var step int
	switch {
	case expiresIn <= 0:
		return entities.MinBenefit
	case expiresIn <= entities.FervexSecondThreshold:
		step = 3
	case expiresIn <= entities.FervexFirstThreshold:
		step = 2
	default:
		step = 1
	}
	return clampBenefit(benefit + step)
}

func dafalganBenefit(benefit, expiresIn int) int {
	return clampBenefit(benefit - rate(2, expiresIn))
}

func defaultBenefit(benefit, expiresIn int) int {
	return clampBenefit(benefit - rate(1, expiresIn))
}

var (
	// MagicPillBehavior never changes benefit or expiry
	MagicPillBehavior = Behavior{UpdateBenefit: unchangedBenefit, UpdateExpiration: unchangedExpiration}

	// HerbalTeaBehavior gains benefit with age, twice as fast once expired
	HerbalTeaBehavior = Behavior{UpdateBenefit: herbalTeaBenefit, UpdateExpiration: decrementExpiration}

	// FervexBehavior gains benefit faster close to expiry and drops to zero after it
	FervexBehavior = Behavior{UpdateBenefit: fervexBenefit, UpdateExpiration: decrementExpiration}

	// DafalganBehavior decays twice as fast as the default
	DafalganBehavior = Behavior{UpdateBenefit: dafalganBenefit, UpdateExpiration: decrementExpiration}

	// DefaultBehavior applies to every unregistered name
	DefaultBehavior = Behavior{UpdateBenefit: defaultBenefit, UpdateExpiration: decrementExpiration}
)

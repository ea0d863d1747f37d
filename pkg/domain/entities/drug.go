package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Known drug type names. The name of a drug doubles as its type tag.
const (
	MagicPill = "Magic Pill"
	HerbalTea = "Herbal Tea"
	Fervex    = "Fervex"
	Dafalgan  = "Dafalgan"
)

// Limits shared by the update rules and the alert checks
const (
	MaxBenefit            = 50
	MinBenefit            = 0
	FervexFirstThreshold  = 10
	FervexSecondThreshold = 5
	LowStockThreshold     = 5
	CriticalExpiryDays    = 7

	DefaultReorderPoint = LowStockThreshold
)

// Category represents the informational classification of a drug
type Category int

const (
	Other Category = iota
	Analgesic
	Antipyretic
	Supplement
	Herbal
)

// String method for Category enum
func (c Category) String() string {
	switch c {
	case Analgesic:
		return "Analgesic"
	case Antipyretic:
		return "Antipyretic"
	case Supplement:
		return "Supplement"
	case Herbal:
		return "Herbal"
	default:
		return "Other"
	}
}

// ParseCategory maps a label to a Category. Unknown labels are Other.
func ParseCategory(label string) Category {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "analgesic":
		return Analgesic
	case "antipyretic":
		return Antipyretic
	case "supplement":
		return Supplement
	case "herbal":
		return Herbal
	default:
		return Other
	}
}

// Drug is an inventory record whose benefit and expiry evolve once per tick
type Drug struct {
	Name         string
	Category     Category
	ExpiresIn    int
	Benefit      int
	Stock        int
	ReorderPoint int
	BatchNumber  string
	CreatedAt    time.Time
}

// DrugOption customises a drug at construction
type DrugOption func(*drugOptions)

type drugOptions struct {
	stock        int
	reorderPoint int
	now          func() time.Time
}

// WithStock sets the quantity on hand (default 0)
func WithStock(stock int) DrugOption {
	return func(o *drugOptions) { o.stock = stock }
}

// WithReorderPoint sets the reorder threshold (default DefaultReorderPoint)
func WithReorderPoint(reorderPoint int) DrugOption {
	return func(o *drugOptions) { o.reorderPoint = reorderPoint }
}

// WithClock overrides the creation time source
func WithClock(now func() time.Time) DrugOption {
	return func(o *drugOptions) { o.now = now }
}

// NewDrug creates a validated Drug and assigns its batch number.
// Stock and reorder point are taken as given.
func NewDrug(name string, expiresIn, benefit int, category Category, opts ...DrugOption) (*Drug, error) {
	if name == "" {
		return nil, fmt.Errorf("drug name cannot be empty: %w", ErrInvalidArgument)
	}

	o := drugOptions{
		reorderPoint: DefaultReorderPoint,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	createdAt := o.now()
	return &Drug{
		Name:         name,
		Category:     category,
		ExpiresIn:    expiresIn,
		Benefit:      benefit,
		Stock:        o.stock,
		ReorderPoint: o.reorderPoint,
		BatchNumber:  NewBatchNumber(name, createdAt),
		CreatedAt:    createdAt,
	}, nil
}

// ParseDrug creates a Drug from untyped text fields such as a CSV row.
// expiresIn and benefit must be integers.
func ParseDrug(name, expiresIn, benefit string, category Category, opts ...DrugOption) (*Drug, error) {
	exp, err := strconv.Atoi(strings.TrimSpace(expiresIn))
	if err != nil {
		return nil, fmt.Errorf("expires in must be an integer, got %q: %w", expiresIn, ErrInvalidArgument)
	}
	ben, err := strconv.Atoi(strings.TrimSpace(benefit))
	if err != nil {
		return nil, fmt.Errorf("benefit must be an integer, got %q: %w", benefit, ErrInvalidArgument)
	}
	return NewDrug(name, exp, ben, category, opts...)
}

// NeedsReorder reports whether stock is at or below the reorder point
func (d *Drug) NeedsReorder() bool {
	return d.Stock <= d.ReorderPoint
}

// IsExpiringSoon reports whether the drug is within CriticalExpiryDays of expiry
func (d *Drug) IsExpiringSoon() bool {
	return d.ExpiresIn <= CriticalExpiryDays
}

// IsExpired reports whether the expiry date has been reached
func (d *Drug) IsExpired() bool {
	return d.ExpiresIn <= 0
}

// NewBatchNumber derives a traceability identifier from the name, the creation
// time and a random suffix. It is not guaranteed to be unique.
func NewBatchNumber(name string, createdAt time.Time) string {
	prefix := []rune(strings.ToUpper(strings.ReplaceAll(name, " ", "")))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	if len(prefix) == 0 {
		prefix = []rune("DRG")
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%s-%s",
		string(prefix),
		strings.ToUpper(strconv.FormatInt(createdAt.UnixMilli(), 36)),
		strings.ToUpper(suffix))
}

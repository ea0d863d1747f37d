package testing

import (
	"time"

	"github.com/vsinha/pharmacy/pkg/domain/entities"
	"github.com/vsinha/pharmacy/pkg/infrastructure/repositories/memory"
)

// SampleClock is the creation time given to every fixture drug
var SampleClock = func() time.Time {
	return time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
}

// MustCreateDrug is a helper for tests - panics on validation error
func MustCreateDrug(name string, expiresIn, benefit int, category entities.Category, stock, reorderPoint int) *entities.Drug {
	drug, err := entities.NewDrug(name, expiresIn, benefit, category,
		entities.WithStock(stock),
		entities.WithReorderPoint(reorderPoint),
		entities.WithClock(SampleClock),
	)
	if err != nil {
		panic(err)
	}
	return drug
}

// BuildSampleInventory builds a small inventory with one batch of every
// registered type and one unregistered name
func BuildSampleInventory() *memory.DrugRepository {
	drugs := []*entities.Drug{
		MustCreateDrug(entities.MagicPill, 15, 40, entities.Supplement, 12, 5),
		MustCreateDrug(entities.HerbalTea, 10, 5, entities.Herbal, 30, 10),
		MustCreateDrug(entities.Fervex, 12, 35, entities.Antipyretic, 2, 5),
		MustCreateDrug(entities.Dafalgan, 20, 30, entities.Analgesic, 8, 5),
		MustCreateDrug("Aspirin", 6, 20, entities.Analgesic, 50, 5),
	}

	repo := memory.NewDrugRepository(len(drugs))
	if err := repo.LoadDrugs(drugs); err != nil {
		panic(err)
	}
	return repo
}

// BuildLargeInventory builds n drugs cycling through the registered types,
// with expiry and benefit spread so every rule branch is reached
func BuildLargeInventory(n int) *memory.DrugRepository {
	names := []string{entities.MagicPill, entities.HerbalTea, entities.Fervex, entities.Dafalgan, "Generic"}

	repo := memory.NewDrugRepository(n)
	for i := 0; i < n; i++ {
		name := names[i%len(names)]
		drug, err := entities.NewDrug(name, i%40-5, i%(entities.MaxBenefit+1), entities.Other,
			entities.WithStock(i%20),
			entities.WithClock(SampleClock),
		)
		if err != nil {
			panic(err)
		}
		if err := repo.SaveDrug(drug); err != nil {
			panic(err)
		}
	}
	return repo
}

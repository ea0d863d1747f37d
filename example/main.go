package main

import (
	"context"
	"fmt"

	"github.com/vsinha/pharmacy/pkg/application/services/pharmacy"
	"github.com/vsinha/pharmacy/pkg/domain/entities"
	"github.com/vsinha/pharmacy/pkg/domain/rules"
)

func main() {
	drugs := mustDrugs(
		func() (*entities.Drug, error) {
			return entities.NewDrug(entities.Fervex, 12, 35, entities.Antipyretic, entities.WithStock(3))
		},
		func() (*entities.Drug, error) {
			return entities.NewDrug(entities.HerbalTea, 10, 5, entities.Herbal, entities.WithStock(30))
		},
		func() (*entities.Drug, error) {
			return entities.NewDrug(entities.Dafalgan, 20, 30, entities.Analgesic, entities.WithStock(8))
		},
		func() (*entities.Drug, error) {
			return entities.NewDrug("Cough Syrup", 6, 20, entities.Other, entities.WithStock(15))
		},
	)

	// Cough Syrup gets its own rule: it loses 3 benefit per day
	registry := rules.NewRegistry()
	err := registry.Register("Cough Syrup", rules.Behavior{
		UpdateBenefit: func(benefit, expiresIn int) int {
			return max(benefit-3, entities.MinBenefit)
		},
		UpdateExpiration: rules.DefaultBehavior.UpdateExpiration,
	})
	if err != nil {
		fmt.Printf("❌ Failed to register behavior: %v\n", err)
		return
	}

	p, err := pharmacy.NewPharmacy(drugs, pharmacy.WithRegistry(registry))
	if err != nil {
		fmt.Printf("❌ Failed to create pharmacy: %v\n", err)
		return
	}

	fmt.Println("💊 Running pharmacy for 14 days...")
	result, err := pharmacy.Simulate(context.Background(), p, 14)
	if err != nil {
		fmt.Printf("❌ Simulation failed: %v\n", err)
		return
	}

	fmt.Println("📊 Final Inventory:")
	for _, drug := range result.Final() {
		fmt.Printf("  %-12s expires in %3d, benefit %2d, stock %d\n",
			drug.Name, drug.ExpiresIn, drug.Benefit, drug.Stock)
	}
	fmt.Println()

	fmt.Printf("⚠️  %d low stock and %d expiry alerts\n",
		len(p.Alerts(entities.LowStock)), len(p.Alerts(entities.ExpiringSoon)))
	for _, alert := range p.Alerts() {
		fmt.Printf("  %-14s %-12s expires in %d\n", alert.Type, alert.DrugName, alert.ExpiresIn)
	}
}

func mustDrugs(constructors ...func() (*entities.Drug, error)) []*entities.Drug {
	drugs := make([]*entities.Drug, 0, len(constructors))
	for _, construct := range constructors {
		drug, err := construct()
		if err != nil {
			panic(err)
		}
		drugs = append(drugs, drug)
	}
	return drugs
}

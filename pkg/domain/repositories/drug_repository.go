package repositories

import "github.com/vsinha/pharmacy/pkg/domain/entities"

// DrugRepository provides access to the drug catalog
type DrugRepository interface {
	GetDrug(batchNumber string) (*entities.Drug, error)
	GetDrugsByName(name string) ([]*entities.Drug, error)
	GetAllDrugs() ([]*entities.Drug, error)
	LoadDrugs(drugs []*entities.Drug) error
}

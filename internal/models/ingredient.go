package models

import (
	"github.com/jinzhu/gorm"

	"custochef/internal/costing"
)

// Ingredient represents a raw purchasable input. UnitCost is derived from the
// purchase price and package size on every write and is never accepted from
// client input.
type Ingredient struct {
	gorm.Model
	Name        string       `json:"name"`
	Price       float64      `json:"price"`
	PackageSize float64      `json:"package_size"`
	Unit        costing.Unit `json:"unit"`
	UnitCost    float64      `json:"unit_cost"`
}

// TableName sets the table name for Ingredient
func (Ingredient) TableName() string {
	return "ingredients"
}

// RecomputeUnitCost refreshes the derived cost-per-base-unit field.
func (i *Ingredient) RecomputeUnitCost() {
	i.UnitCost = costing.UnitCost(i.Price, i.PackageSize, i.Unit)
}

// CostView returns the costing view consumed by the aggregators.
func (i *Ingredient) CostView() costing.IngredientCost {
	return costing.IngredientCost{UnitCost: i.UnitCost}
}

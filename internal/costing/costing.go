// Package costing implements the cost-propagation and pricing-simulation engine.
// All functions are pure: ingredient unit costs feed recipe batch costs, recipe
// batch costs feed dish costs, and dish costs feed the margin simulator.
package costing

import (
	"errors"
	"fmt"
)

// Unit identifies the unit of measure an ingredient or recipe is declared in.
// Costs are always tracked per base unit: gram, millilitre, or each. Package
// sizes and yields declared in kilograms or litres are converted to the base
// unit before any division.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMillilitre Unit = "ml"
	UnitLitre      Unit = "l"
	UnitEach       Unit = "un"
)

// ValidUnit reports whether u is one of the supported units of measure.
func ValidUnit(u Unit) bool {
	switch u {
	case UnitGram, UnitKilogram, UnitMillilitre, UnitLitre, UnitEach:
		return true
	}
	return false
}

// baseFactor returns the multiplier that converts a quantity declared in u
// into the base unit (g/ml/each).
func baseFactor(u Unit) float64 {
	if u == UnitKilogram || u == UnitLitre {
		return 1000
	}
	return 1
}

// UnitCost converts a purchased-package price into a cost per base unit.
// A non-positive package size yields 0 so downstream aggregation stays
// total-safe.
func UnitCost(price, packageSize float64, unit Unit) float64 {
	if packageSize <= 0 {
		return 0
	}
	return price / (packageSize * baseFactor(unit))
}

// RecipeLine is one (ingredient reference, quantity) pair of a recipe.
// Quantity is expressed in the ingredient's base unit.
type RecipeLine struct {
	IngredientID uint    `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// DishItemKind distinguishes the two kinds of dish line items.
type DishItemKind string

const (
	ItemIngredient DishItemKind = "ingredient"
	ItemRecipe     DishItemKind = "recipe"
)

// DishItem is one line of a dish composition: an ingredient or recipe
// reference plus the quantity used, in the dish's base unit.
type DishItem struct {
	ItemID   uint         `json:"item_id"`
	ItemKind DishItemKind `json:"item_kind"`
	Quantity float64      `json:"quantity"`
}

// IngredientCost is the resolved costing view of an ingredient.
type IngredientCost struct {
	UnitCost float64
}

// RecipeBatch is the resolved costing view of a recipe: the full batch cost
// plus the yield and unit needed to derive a cost per base unit.
type RecipeBatch struct {
	TotalCost float64
	Yield     float64
	Unit      Unit
}

// IngredientResolver maps an ingredient id to its costing view. A nil result
// marks an unresolved reference.
type IngredientResolver func(id uint) *IngredientCost

// RecipeResolver maps a recipe id to its costing view. A nil result marks an
// unresolved reference.
type RecipeResolver func(id uint) *RecipeBatch

// RecipeCost accumulates unit cost × quantity across all lines. Unresolved
// ingredient references contribute zero and are reported in missing; the
// computation never fails. The result is the cost of the full batch as
// declared, not a per-unit figure.
func RecipeCost(lines []RecipeLine, resolve IngredientResolver) (total float64, missing []uint) {
	for _, line := range lines {
		ing := resolve(line.IngredientID)
		if ing == nil {
			missing = append(missing, line.IngredientID)
			continue
		}
		total += ing.UnitCost * line.Quantity
	}
	return total, missing
}

// RecipePerUnitCost converts a recipe's batch cost into a cost per base unit
// of its output. Yields declared in kg/l are normalized ×1000 so the result
// is per gram or millilitre. A non-positive yield yields 0.
func RecipePerUnitCost(totalCost, yield float64, unit Unit) float64 {
	if yield <= 0 {
		return 0
	}
	return totalCost / (yield * baseFactor(unit))
}

// DishCost resolves each line item to a cost per base unit and accumulates
// cost × quantity. Unresolved references follow the same fail-open policy as
// RecipeCost.
func DishCost(items []DishItem, resolveIngredient IngredientResolver, resolveRecipe RecipeResolver) (total float64, missing []uint) {
	for _, item := range items {
		var perUnit float64
		switch item.ItemKind {
		case ItemIngredient:
			ing := resolveIngredient(item.ItemID)
			if ing == nil {
				missing = append(missing, item.ItemID)
				continue
			}
			perUnit = ing.UnitCost
		case ItemRecipe:
			rec := resolveRecipe(item.ItemID)
			if rec == nil {
				missing = append(missing, item.ItemID)
				continue
			}
			perUnit = RecipePerUnitCost(rec.TotalCost, rec.Yield, rec.Unit)
		default:
			missing = append(missing, item.ItemID)
			continue
		}
		total += perUnit * item.Quantity
	}
	return total, missing
}

// ErrInvalidMargin is returned when a desired margin falls outside [0, 1).
// A margin of 1 or more makes the price denominator non-positive, which
// would produce an infinite or negative price.
var ErrInvalidMargin = errors.New("desired margin must be in [0, 1)")

// MarginFromPrice returns the gross margin fraction achieved by selling at
// sellingPrice with the given total cost. A zero selling price returns 0.
func MarginFromPrice(sellingPrice, totalCost float64) float64 {
	if sellingPrice <= 0 {
		return 0
	}
	return (sellingPrice - totalCost) / sellingPrice
}

// PriceFromMargin returns the selling price that achieves desiredMargin over
// totalCost. It is the exact inverse of MarginFromPrice for cost > 0 and
// margin in [0, 1).
func PriceFromMargin(totalCost, desiredMargin float64) (float64, error) {
	if desiredMargin < 0 || desiredMargin >= 1 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidMargin, desiredMargin)
	}
	return totalCost / (1 - desiredMargin), nil
}

// Profit is the absolute gain at a given selling price. Display value only,
// never persisted.
func Profit(sellingPrice, totalCost float64) float64 {
	return sellingPrice - totalCost
}

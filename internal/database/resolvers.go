package database

import (
	"github.com/jinzhu/gorm"

	"custochef/internal/costing"
	"custochef/internal/models"
)

// IngredientResolver snapshots all ingredients in one read and returns a
// lookup for the cost aggregators. The snapshot is not transactionally
// isolated from concurrent writes; a rare read-skew against a stale price
// is accepted.
func IngredientResolver(db *gorm.DB) costing.IngredientResolver {
	var ingredients []models.Ingredient
	db.Find(&ingredients)

	byID := make(map[uint]costing.IngredientCost, len(ingredients))
	for i := range ingredients {
		byID[ingredients[i].ID] = ingredients[i].CostView()
	}

	return func(id uint) *costing.IngredientCost {
		if view, ok := byID[id]; ok {
			return &view
		}
		return nil
	}
}

// RecipeResolver snapshots all recipes in one read and returns a lookup for
// the dish aggregator.
func RecipeResolver(db *gorm.DB) costing.RecipeResolver {
	var recipes []models.Recipe
	db.Find(&recipes)

	byID := make(map[uint]costing.RecipeBatch, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = recipes[i].BatchView()
	}

	return func(id uint) *costing.RecipeBatch {
		if view, ok := byID[id]; ok {
			return &view
		}
		return nil
	}
}

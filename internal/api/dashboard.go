package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"custochef/internal/database"
	"custochef/internal/models"
)

// DashboardSummary returns entity counts, expense totals by kind, and
// runtime stats for the overview page.
func (s *Server) DashboardSummary(c *gin.Context) {
	var ingredientCount, recipeCount, dishCount, expenseCount int64
	s.db.Model(&models.Ingredient{}).Count(&ingredientCount)
	s.db.Model(&models.Recipe{}).Count(&recipeCount)
	s.db.Model(&models.Dish{}).Count(&dishCount)
	s.db.Model(&models.Expense{}).Count(&expenseCount)

	var expenses []models.Expense
	s.db.Find(&expenses)
	var fixedTotal, variableTotal float64
	for _, e := range expenses {
		switch e.Kind {
		case models.ExpenseFixed:
			fixedTotal += e.Amount
		case models.ExpenseVariable:
			variableTotal += e.Amount
		}
	}

	summary := gin.H{
		"ingredients":             ingredientCount,
		"recipes":                 recipeCount,
		"dishes":                  dishCount,
		"expenses":                expenseCount,
		"fixed_expenses_total":    fixedTotal,
		"variable_expenses_total": variableTotal,
	}
	if s.monitor != nil {
		summary["runtime"] = s.monitor.Snapshot()
	}

	c.JSON(http.StatusOK, summary)
}

// danglingReference identifies one line item whose target no longer exists.
type danglingReference struct {
	Entity   string `json:"entity"`
	EntityID uint   `json:"entity_id"`
	ItemID   uint   `json:"item_id"`
	ItemKind string `json:"item_kind"`
}

// CheckIntegrity reports dangling references without changing any stored
// cost. The aggregators stay fail-open; this read-only report exists for
// operators who want to find the zero-contribution lines.
func (s *Server) CheckIntegrity(c *gin.Context) {
	resolveIngredient := database.IngredientResolver(s.db)
	resolveRecipe := database.RecipeResolver(s.db)

	dangling := []danglingReference{}

	var recipes []models.Recipe
	s.db.Find(&recipes)
	for i := range recipes {
		for _, line := range recipes[i].Lines {
			if resolveIngredient(line.IngredientID) == nil {
				dangling = append(dangling, danglingReference{
					Entity:   "recipe",
					EntityID: recipes[i].ID,
					ItemID:   line.IngredientID,
					ItemKind: "ingredient",
				})
			}
		}
	}

	var dishes []models.Dish
	s.db.Find(&dishes)
	for i := range dishes {
		for _, item := range dishes[i].Items {
			var resolved bool
			switch item.ItemKind {
			case "ingredient":
				resolved = resolveIngredient(item.ItemID) != nil
			case "recipe":
				resolved = resolveRecipe(item.ItemID) != nil
			}
			if !resolved {
				dangling = append(dangling, danglingReference{
					Entity:   "dish",
					EntityID: dishes[i].ID,
					ItemID:   item.ItemID,
					ItemKind: string(item.ItemKind),
				})
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"dangling_references": dangling,
		"clean":               len(dangling) == 0,
	})
}

package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"custochef/internal/costing"
	"custochef/internal/database"
	"custochef/internal/models"
)

// recipeInput is the client-writable subset of a recipe. TotalCost is
// recomputed from current ingredient data on every write.
type recipeInput struct {
	Name        string               `json:"name"`
	Yield       float64              `json:"yield"`
	GrossWeight float64              `json:"gross_weight"`
	Unit        costing.Unit         `json:"unit"`
	Lines       []costing.RecipeLine `json:"lines"`
}

func (in *recipeInput) validate() map[string]string {
	errs := make(map[string]string)
	if in.Name == "" {
		errs["name"] = "name is required"
	}
	if in.Yield <= 0 {
		errs["yield"] = "yield must be greater than zero"
	}
	switch in.Unit {
	case costing.UnitKilogram, costing.UnitLitre, costing.UnitEach:
	default:
		errs["unit"] = "unit must be one of kg, l, un"
	}
	for i, line := range in.Lines {
		if line.IngredientID == 0 {
			errs[fmt.Sprintf("lines.%d.ingredient_id", i)] = "ingredient reference is required"
		}
		if line.Quantity <= 0 {
			errs[fmt.Sprintf("lines.%d.quantity", i)] = "quantity must be greater than zero"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// computeRecipeCost recomputes the batch cost against the current ingredient
// snapshot. Dangling references contribute zero; they are logged and counted
// but never fail the write.
func (s *Server) computeRecipeCost(lines models.RecipeLines) float64 {
	start := time.Now()
	total, missing := costing.RecipeCost(lines, database.IngredientResolver(s.db))
	if s.metrics != nil {
		s.metrics.RecordRecompute("recipe", time.Since(start))
		s.metrics.RecordDanglingReferences("recipe", len(missing))
	}
	if len(missing) > 0 {
		log.Printf("Recipe references missing ingredients %v; lines contributed zero cost", missing)
	}
	return total
}

func (s *Server) ListRecipes(c *gin.Context) {
	var recipes []models.Recipe
	if err := s.db.Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (s *Server) CreateRecipe(c *gin.Context) {
	var in recipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := in.validate(); errs != nil {
		respondValidation(c, errs)
		return
	}

	recipe := models.Recipe{
		Name:        in.Name,
		Yield:       in.Yield,
		GrossWeight: in.GrossWeight,
		Unit:        in.Unit,
		Lines:       models.RecipeLines(in.Lines),
	}
	recipe.TotalCost = s.computeRecipeCost(recipe.Lines)

	if err := s.db.Create(&recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}

	s.recordWrite("recipe", "create", recipe.ID)
	c.JSON(http.StatusCreated, recipe)
}

func (s *Server) UpdateRecipe(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var in recipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := in.validate(); errs != nil {
		respondValidation(c, errs)
		return
	}

	var recipe models.Recipe
	if s.db.First(&recipe, id).RecordNotFound() {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	recipe.Name = in.Name
	recipe.Yield = in.Yield
	recipe.GrossWeight = in.GrossWeight
	recipe.Unit = in.Unit
	recipe.Lines = models.RecipeLines(in.Lines)
	recipe.TotalCost = s.computeRecipeCost(recipe.Lines)

	if err := s.db.Save(&recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		return
	}

	s.recordWrite("recipe", "update", recipe.ID)
	c.JSON(http.StatusOK, recipe)
}

func (s *Server) DeleteRecipe(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := s.db.Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}

	s.recordWrite("recipe", "delete", uint(id))
	c.Status(http.StatusNoContent)
}

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"custochef/internal/costing"
	"custochef/internal/models"
)

// ingredientInput is the client-writable subset of an ingredient. UnitCost
// is derived and never accepted from the request body.
type ingredientInput struct {
	Name        string       `json:"name"`
	Price       float64      `json:"price"`
	PackageSize float64      `json:"package_size"`
	Unit        costing.Unit `json:"unit"`
}

func (in *ingredientInput) validate() map[string]string {
	errs := make(map[string]string)
	if in.Name == "" {
		errs["name"] = "name is required"
	}
	if in.Price < 0 {
		errs["price"] = "price must not be negative"
	}
	if in.PackageSize <= 0 {
		errs["package_size"] = "package size must be greater than zero"
	}
	if !costing.ValidUnit(in.Unit) {
		errs["unit"] = "unit must be one of g, kg, ml, l, un"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (s *Server) ListIngredients(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := s.db.Find(&ingredients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ingredients"})
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (s *Server) CreateIngredient(c *gin.Context) {
	var in ingredientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := in.validate(); errs != nil {
		respondValidation(c, errs)
		return
	}

	start := time.Now()
	ingredient := models.Ingredient{
		Name:        in.Name,
		Price:       in.Price,
		PackageSize: in.PackageSize,
		Unit:        in.Unit,
	}
	ingredient.RecomputeUnitCost()
	if s.metrics != nil {
		s.metrics.RecordRecompute("ingredient", time.Since(start))
	}

	if err := s.db.Create(&ingredient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ingredient"})
		return
	}

	s.recordWrite("ingredient", "create", ingredient.ID)
	c.JSON(http.StatusCreated, ingredient)
}

func (s *Server) UpdateIngredient(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	var in ingredientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := in.validate(); errs != nil {
		respondValidation(c, errs)
		return
	}

	var ingredient models.Ingredient
	if s.db.First(&ingredient, id).RecordNotFound() {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}

	ingredient.Name = in.Name
	ingredient.Price = in.Price
	ingredient.PackageSize = in.PackageSize
	ingredient.Unit = in.Unit
	ingredient.RecomputeUnitCost()

	if err := s.db.Save(&ingredient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ingredient"})
		return
	}

	s.recordWrite("ingredient", "update", ingredient.ID)
	c.JSON(http.StatusOK, ingredient)
}

func (s *Server) DeleteIngredient(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	if err := s.db.Delete(&models.Ingredient{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete ingredient"})
		return
	}

	s.recordWrite("ingredient", "delete", uint(id))
	c.Status(http.StatusNoContent)
}

func parseID(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}

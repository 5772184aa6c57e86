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

// dishInput is the client-writable subset of a dish. TotalCost is computed
// authoritatively server-side so a client cannot submit an arbitrary cost.
type dishInput struct {
	Name         string             `json:"name"`
	SellingPrice float64            `json:"selling_price"`
	Items        []costing.DishItem `json:"items"`
}

func (in *dishInput) validate() map[string]string {
	errs := make(map[string]string)
	if in.Name == "" {
		errs["name"] = "name is required"
	}
	if in.SellingPrice < 0 {
		errs["selling_price"] = "selling price must not be negative"
	}
	if len(in.Items) == 0 {
		errs["items"] = "at least one line item is required"
	}
	for i, item := range in.Items {
		if item.ItemID == 0 {
			errs[fmt.Sprintf("items.%d.item_id", i)] = "item reference is required"
		}
		if item.ItemKind != costing.ItemIngredient && item.ItemKind != costing.ItemRecipe {
			errs[fmt.Sprintf("items.%d.item_kind", i)] = "item kind must be ingredient or recipe"
		}
		if item.Quantity <= 0 {
			errs[fmt.Sprintf("items.%d.quantity", i)] = "quantity must be greater than zero"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// computeDishCost recomputes the dish cost against current ingredient and
// recipe snapshots. The two reads are not transactionally isolated from
// concurrent writes; a rare read-skew is accepted.
func (s *Server) computeDishCost(items models.DishItems) float64 {
	start := time.Now()
	total, missing := costing.DishCost(items,
		database.IngredientResolver(s.db),
		database.RecipeResolver(s.db))
	if s.metrics != nil {
		s.metrics.RecordRecompute("dish", time.Since(start))
		s.metrics.RecordDanglingReferences("dish", len(missing))
	}
	if len(missing) > 0 {
		log.Printf("Dish references missing items %v; lines contributed zero cost", missing)
	}
	return total
}

func (s *Server) ListDishes(c *gin.Context) {
	var dishes []models.Dish
	if err := s.db.Find(&dishes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list dishes"})
		return
	}
	c.JSON(http.StatusOK, dishes)
}

func (s *Server) CreateDish(c *gin.Context) {
	var in dishInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := in.validate(); errs != nil {
		respondValidation(c, errs)
		return
	}

	dish := models.Dish{
		Name:         in.Name,
		SellingPrice: in.SellingPrice,
		Items:        models.DishItems(in.Items),
	}
	dish.TotalCost = s.computeDishCost(dish.Items)

	if err := s.db.Create(&dish).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create dish"})
		return
	}

	s.recordWrite("dish", "create", dish.ID)
	c.JSON(http.StatusCreated, dish)
}

func (s *Server) UpdateDish(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	var in dishInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := in.validate(); errs != nil {
		respondValidation(c, errs)
		return
	}

	var dish models.Dish
	if s.db.First(&dish, id).RecordNotFound() {
		c.JSON(http.StatusNotFound, gin.H{"error": "dish not found"})
		return
	}

	dish.Name = in.Name
	dish.SellingPrice = in.SellingPrice
	dish.Items = models.DishItems(in.Items)
	dish.TotalCost = s.computeDishCost(dish.Items)

	if err := s.db.Save(&dish).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update dish"})
		return
	}

	s.recordWrite("dish", "update", dish.ID)
	c.JSON(http.StatusOK, dish)
}

func (s *Server) DeleteDish(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	if err := s.db.Delete(&models.Dish{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete dish"})
		return
	}

	s.recordWrite("dish", "delete", uint(id))
	c.Status(http.StatusNoContent)
}

package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custochef/internal/models"
)

// seedKitchen loads the ingredients plus a stroganoff-style recipe so dish
// aggregation has both item kinds to resolve.
func seedKitchen(t *testing.T, db *gorm.DB) {
	t.Helper()

	fixtures := []models.Ingredient{
		{Name: "Batata Palha", Price: 15, PackageSize: 500, Unit: "g"}, // id 1, 0.03/g
	}
	for i := range fixtures {
		fixtures[i].RecomputeUnitCost()
		require.NoError(t, db.Create(&fixtures[i]).Error)
	}

	recipe := models.Recipe{
		Name:      "Estrogonofe de Carne",
		Yield:     1.2,
		Unit:      "kg",
		TotalCost: 49.31,
		Lines:     models.RecipeLines{},
	}
	require.NoError(t, db.Create(&recipe).Error) // id 1
}

func TestCreateDishComputesTotalCost(t *testing.T) {
	server, db := newTestServer(t)
	seedKitchen(t, db)

	w := doJSON(t, server, http.MethodPost, "/api/v1/dishes", gin.H{
		"name":          "PF de Estrogonofe",
		"selling_price": 29.90,
		"items": []gin.H{
			{"item_id": 1, "item_kind": "recipe", "quantity": 300},
			{"item_id": 1, "item_kind": "ingredient", "quantity": 50},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var dish models.Dish
	decode(t, w, &dish)
	// 300g of recipe at 49.31/(1.2*1000) plus 50g of sticks at 0.03
	want := 300*(49.31/1200) + 50*0.03
	assert.InDelta(t, want, dish.TotalCost, 1e-9)
}

func TestCreateDishIgnoresClientTotalCost(t *testing.T) {
	server, db := newTestServer(t)
	seedKitchen(t, db)

	w := doJSON(t, server, http.MethodPost, "/api/v1/dishes", gin.H{
		"name":          "PF",
		"selling_price": 10,
		"total_cost":    0.01,
		"items":         []gin.H{{"item_id": 1, "item_kind": "ingredient", "quantity": 100}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var dish models.Dish
	decode(t, w, &dish)
	assert.InDelta(t, 3.0, dish.TotalCost, 1e-9)
}

func TestCreateDishRequiresLineItems(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/api/v1/dishes", gin.H{
		"name":          "Vazio",
		"selling_price": 10,
		"items":         []gin.H{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, w, &resp)
	assert.Contains(t, resp.Errors, "items")
}

func TestCreateDishRejectsUnknownItemKind(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/api/v1/dishes", gin.H{
		"name":          "Estranho",
		"selling_price": 10,
		"items":         []gin.H{{"item_id": 1, "item_kind": "garnish", "quantity": 10}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, w, &resp)
	assert.Contains(t, resp.Errors, "items.0.item_kind")
}

func TestCreateDishWithDanglingReferenceFailsOpen(t *testing.T) {
	server, db := newTestServer(t)
	seedKitchen(t, db)

	w := doJSON(t, server, http.MethodPost, "/api/v1/dishes", gin.H{
		"name":          "PF",
		"selling_price": 10,
		"items": []gin.H{
			{"item_id": 1, "item_kind": "ingredient", "quantity": 100},
			{"item_id": 42, "item_kind": "recipe", "quantity": 300},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var dish models.Dish
	decode(t, w, &dish)
	assert.InDelta(t, 3.0, dish.TotalCost, 1e-9)
}

func TestUpdateDishRecomputesAgainstCurrentData(t *testing.T) {
	server, db := newTestServer(t)
	seedKitchen(t, db)

	w := doJSON(t, server, http.MethodPost, "/api/v1/dishes", gin.H{
		"name":          "PF",
		"selling_price": 10,
		"items":         []gin.H{{"item_id": 1, "item_kind": "ingredient", "quantity": 100}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Sticks get cheaper.
	var sticks models.Ingredient
	require.NoError(t, db.First(&sticks, 1).Error)
	sticks.Price = 7.5
	sticks.RecomputeUnitCost()
	require.NoError(t, db.Save(&sticks).Error)

	w = doJSON(t, server, http.MethodPut, "/api/v1/dishes/1", gin.H{
		"name":          "PF",
		"selling_price": 10,
		"items":         []gin.H{{"item_id": 1, "item_kind": "ingredient", "quantity": 100}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var dish models.Dish
	decode(t, w, &dish)
	assert.InDelta(t, 1.5, dish.TotalCost, 1e-9)
}

func TestDeleteDishLeavesDanglingReferenceVisibleInIntegrity(t *testing.T) {
	server, db := newTestServer(t)
	seedKitchen(t, db)

	w := doJSON(t, server, http.MethodPost, "/api/v1/dishes", gin.H{
		"name":          "PF",
		"selling_price": 10,
		"items":         []gin.H{{"item_id": 1, "item_kind": "recipe", "quantity": 300}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Deleting the recipe leaves the dish pointing at nothing.
	w = doJSON(t, server, http.MethodDelete, "/api/v1/recipes/1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, server, http.MethodGet, "/api/v1/integrity", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Clean    bool `json:"clean"`
		Dangling []struct {
			Entity   string `json:"entity"`
			EntityID uint   `json:"entity_id"`
			ItemID   uint   `json:"item_id"`
		} `json:"dangling_references"`
	}
	decode(t, w, &resp)
	assert.False(t, resp.Clean)
	require.Len(t, resp.Dangling, 1)
	assert.Equal(t, "dish", resp.Dangling[0].Entity)
	assert.Equal(t, uint(1), resp.Dangling[0].ItemID)
}

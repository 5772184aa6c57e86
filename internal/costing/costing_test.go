package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitCost(t *testing.T) {
	tests := []struct {
		name        string
		price       float64
		packageSize float64
		unit        Unit
		want        float64
	}{
		{"per gram", 20, 5000, UnitGram, 0.004},
		{"per millilitre", 9, 900, UnitMillilitre, 0.01},
		{"kilogram package normalized to grams", 40, 1, UnitKilogram, 0.04},
		{"litre package normalized to millilitres", 12, 2, UnitLitre, 0.006},
		{"per each", 30, 12, UnitEach, 2.5},
		{"zero package size", 10, 0, UnitGram, 0},
		{"negative package size", 10, -5, UnitKilogram, 0},
		{"free ingredient", 0, 500, UnitGram, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnitCost(tt.price, tt.packageSize, tt.unit)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestUnitCostKilogramEqualsScaledGram(t *testing.T) {
	// 2 kg and 2000 g must price identically per gram.
	assert.InDelta(t, UnitCost(18, 2000, UnitGram), UnitCost(18, 2, UnitKilogram), 1e-12)
}

func resolverFor(ingredients map[uint]IngredientCost) IngredientResolver {
	return func(id uint) *IngredientCost {
		if ing, ok := ingredients[id]; ok {
			return &ing
		}
		return nil
	}
}

func TestRecipeCost(t *testing.T) {
	resolve := resolverFor(map[uint]IngredientCost{
		1: {UnitCost: 0.004}, // rice, 20 per 5000 g
		2: {UnitCost: 0.01},  // oil, 9 per 900 ml
	})

	lines := []RecipeLine{
		{IngredientID: 1, Quantity: 500},
		{IngredientID: 2, Quantity: 10},
	}

	total, missing := RecipeCost(lines, resolve)
	assert.InDelta(t, 2.10, total, 1e-9)
	assert.Empty(t, missing)
}

func TestRecipeCostLinearity(t *testing.T) {
	resolve := resolverFor(map[uint]IngredientCost{
		1: {UnitCost: 0.004},
		2: {UnitCost: 0.01},
		3: {UnitCost: 0.015},
	})

	lines := []RecipeLine{
		{IngredientID: 1, Quantity: 500},
		{IngredientID: 2, Quantity: 20},
		{IngredientID: 3, Quantity: 5},
	}
	doubled := make([]RecipeLine, len(lines))
	for i, l := range lines {
		doubled[i] = RecipeLine{IngredientID: l.IngredientID, Quantity: l.Quantity * 2}
	}

	base, _ := RecipeCost(lines, resolve)
	twice, _ := RecipeCost(doubled, resolve)
	assert.InDelta(t, base*2, twice, 1e-9)
}

func TestRecipeCostUnresolvedReferenceContributesZero(t *testing.T) {
	resolve := resolverFor(map[uint]IngredientCost{
		1: {UnitCost: 0.004},
	})

	withDangling := []RecipeLine{
		{IngredientID: 1, Quantity: 500},
		{IngredientID: 99, Quantity: 1000},
	}
	withoutDangling := withDangling[:1]

	got, missing := RecipeCost(withDangling, resolve)
	want, _ := RecipeCost(withoutDangling, resolve)

	assert.Equal(t, want, got)
	assert.Equal(t, []uint{99}, missing)
}

func TestRecipePerUnitCost(t *testing.T) {
	tests := []struct {
		name      string
		totalCost float64
		yield     float64
		unit      Unit
		want      float64
	}{
		{"kilogram yield normalized", 49.31, 1.2, UnitKilogram, 49.31 / 1200},
		{"litre yield normalized", 10, 2, UnitLitre, 0.005},
		{"per-each yield", 24, 12, UnitEach, 2},
		{"zero yield", 49.31, 0, UnitKilogram, 0},
		{"negative yield", 49.31, -1, UnitKilogram, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RecipePerUnitCost(tt.totalCost, tt.yield, tt.unit), 1e-9)
		})
	}
}

func TestDishCost(t *testing.T) {
	resolveIngredient := resolverFor(map[uint]IngredientCost{
		7: {UnitCost: 0.03}, // potato sticks, 15 per 500 g
	})
	resolveRecipe := func(id uint) *RecipeBatch {
		switch id {
		case 1000:
			return &RecipeBatch{TotalCost: 2.18, Yield: 1, Unit: UnitKilogram}
		case 1003:
			return &RecipeBatch{TotalCost: 49.31, Yield: 1.2, Unit: UnitKilogram}
		}
		return nil
	}

	items := []DishItem{
		{ItemID: 1000, ItemKind: ItemRecipe, Quantity: 200},
		{ItemID: 1003, ItemKind: ItemRecipe, Quantity: 300},
		{ItemID: 7, ItemKind: ItemIngredient, Quantity: 50},
	}

	total, missing := DishCost(items, resolveIngredient, resolveRecipe)
	assert.Empty(t, missing)
	// 200g rice at 2.18/1000 + 300g stroganoff at 49.31/1200 + 50g sticks at 0.03
	want := 200*(2.18/1000) + 300*(49.31/1200) + 50*0.03
	assert.InDelta(t, want, total, 1e-9)

	// The recipe line alone contributes about 12.33.
	assert.InDelta(t, 12.3275, 300*(49.31/1200), 1e-4)
}

func TestDishCostUnresolvedReferenceContributesZero(t *testing.T) {
	resolveIngredient := resolverFor(map[uint]IngredientCost{7: {UnitCost: 0.03}})
	resolveRecipe := func(id uint) *RecipeBatch { return nil }

	withDangling := []DishItem{
		{ItemID: 7, ItemKind: ItemIngredient, Quantity: 50},
		{ItemID: 42, ItemKind: ItemRecipe, Quantity: 300},
	}
	withoutDangling := withDangling[:1]

	got, missing := DishCost(withDangling, resolveIngredient, resolveRecipe)
	want, _ := DishCost(withoutDangling, resolveIngredient, resolveRecipe)

	assert.Equal(t, want, got)
	assert.Equal(t, []uint{42}, missing)
}

func TestDishCostUnknownItemKind(t *testing.T) {
	items := []DishItem{{ItemID: 1, ItemKind: "garnish", Quantity: 10}}
	total, missing := DishCost(items,
		func(uint) *IngredientCost { return nil },
		func(uint) *RecipeBatch { return nil })

	assert.Zero(t, total)
	assert.Equal(t, []uint{1}, missing)
}

func TestPriceFromMargin(t *testing.T) {
	price, err := PriceFromMargin(15.65, 0.30)
	assert.NoError(t, err)
	assert.InDelta(t, 22.357142857, price, 1e-6)
	assert.InDelta(t, 6.707142857, Profit(price, 15.65), 1e-6)
}

func TestPriceFromMarginRejectsDegenerateMargins(t *testing.T) {
	for _, margin := range []float64{1, 1.5, 2, -0.1} {
		_, err := PriceFromMargin(10, margin)
		assert.ErrorIs(t, err, ErrInvalidMargin, "margin %v", margin)
	}
}

func TestMarginFromPrice(t *testing.T) {
	assert.InDelta(t, 0.5, MarginFromPrice(20, 10), 1e-9)
	assert.Zero(t, MarginFromPrice(0, 10))
	assert.Zero(t, MarginFromPrice(-5, 10))
	// Selling below cost reports a negative margin, not an error.
	assert.InDelta(t, -1, MarginFromPrice(10, 20), 1e-9)
}

func TestMarginPriceRoundTrip(t *testing.T) {
	costs := []float64{0.01, 1, 15.65, 49.31, 1200}
	margins := []float64{0, 0.1, 0.3, 0.5, 0.75, 0.99}

	for _, cost := range costs {
		for _, margin := range margins {
			price, err := PriceFromMargin(cost, margin)
			assert.NoError(t, err)
			assert.InDelta(t, margin, MarginFromPrice(price, cost), 1e-9,
				"cost %v margin %v", cost, margin)
		}
	}
}

func TestValidUnit(t *testing.T) {
	for _, u := range []Unit{UnitGram, UnitKilogram, UnitMillilitre, UnitLitre, UnitEach} {
		assert.True(t, ValidUnit(u))
	}
	assert.False(t, ValidUnit("oz"))
	assert.False(t, ValidUnit(""))
}

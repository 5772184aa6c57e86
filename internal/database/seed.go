package database

import (
	"log"

	"github.com/jinzhu/gorm"

	"custochef/internal/costing"
	"custochef/internal/models"
)

// Seed ensures sample data exists so a fresh install has something to show.
// Derived cost fields are computed through the costing engine, never copied
// from fixture literals.
func Seed() {
	seedIngredients(db)
	seedRecipes(db)
	seedDishes(db)
	seedExpenses(db)
}

func seedIngredients(db *gorm.DB) {
	var count int64
	db.Model(&models.Ingredient{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []models.Ingredient{
		{Name: "Arroz Cru", Price: 20, PackageSize: 5000, Unit: costing.UnitGram},
		{Name: "Feijão Cru", Price: 8, PackageSize: 1000, Unit: costing.UnitGram},
		{Name: "Óleo de Soja", Price: 9, PackageSize: 900, Unit: costing.UnitMillilitre},
		{Name: "Alho", Price: 15, PackageSize: 1000, Unit: costing.UnitGram},
		{Name: "Sal", Price: 3, PackageSize: 1000, Unit: costing.UnitGram},
		{Name: "Patinho Moído", Price: 40, PackageSize: 1, Unit: costing.UnitKilogram},
		{Name: "Batata Palha", Price: 15, PackageSize: 500, Unit: costing.UnitGram},
		{Name: "Creme de Leite", Price: 4, PackageSize: 200, Unit: costing.UnitGram},
		{Name: "Extrato de Tomate", Price: 5, PackageSize: 340, Unit: costing.UnitGram},
	}
	for i := range defaults {
		defaults[i].RecomputeUnitCost()
		if err := db.Create(&defaults[i]).Error; err != nil {
			log.Printf("Failed to seed ingredient %s: %v", defaults[i].Name, err)
		}
	}
}

func seedRecipes(db *gorm.DB) {
	var count int64
	db.Model(&models.Recipe{}).Count(&count)
	if count > 0 {
		return
	}

	resolve := IngredientResolver(db)

	defaults := []models.Recipe{
		{
			Name: "Arroz Cozido", Yield: 1, GrossWeight: 1000, Unit: costing.UnitKilogram,
			Lines: models.RecipeLines{
				{IngredientID: 1, Quantity: 500},
				{IngredientID: 3, Quantity: 10},
				{IngredientID: 4, Quantity: 5},
				{IngredientID: 5, Quantity: 5},
			},
		},
		{
			Name: "Feijão Cozido", Yield: 1, GrossWeight: 1200, Unit: costing.UnitKilogram,
			Lines: models.RecipeLines{
				{IngredientID: 2, Quantity: 1000},
				{IngredientID: 4, Quantity: 10},
				{IngredientID: 5, Quantity: 8},
			},
		},
		{
			Name: "Carne Moída Refogada", Yield: 0.8, GrossWeight: 1000, Unit: costing.UnitKilogram,
			Lines: models.RecipeLines{
				{IngredientID: 6, Quantity: 1000},
				{IngredientID: 3, Quantity: 20},
				{IngredientID: 4, Quantity: 5},
				{IngredientID: 5, Quantity: 5},
			},
		},
		{
			Name: "Estrogonofe de Carne", Yield: 1.2, GrossWeight: 1200, Unit: costing.UnitKilogram,
			Lines: models.RecipeLines{
				{IngredientID: 6, Quantity: 1000},
				{IngredientID: 8, Quantity: 400},
				{IngredientID: 9, Quantity: 340},
				{IngredientID: 3, Quantity: 20},
				{IngredientID: 4, Quantity: 5},
				{IngredientID: 5, Quantity: 5},
			},
		},
	}
	for i := range defaults {
		total, missing := costing.RecipeCost(defaults[i].Lines, resolve)
		if len(missing) > 0 {
			log.Printf("Seed recipe %s references missing ingredients %v", defaults[i].Name, missing)
		}
		defaults[i].TotalCost = total
		if err := db.Create(&defaults[i]).Error; err != nil {
			log.Printf("Failed to seed recipe %s: %v", defaults[i].Name, err)
		}
	}
}

func seedDishes(db *gorm.DB) {
	var count int64
	db.Model(&models.Dish{}).Count(&count)
	if count > 0 {
		return
	}

	dish := models.Dish{
		Name:         "PF de Estrogonofe",
		SellingPrice: 29.90,
		Items: models.DishItems{
			{ItemID: 1, ItemKind: costing.ItemRecipe, Quantity: 200},
			{ItemID: 4, ItemKind: costing.ItemRecipe, Quantity: 300},
			{ItemID: 7, ItemKind: costing.ItemIngredient, Quantity: 50},
		},
	}

	total, missing := costing.DishCost(dish.Items, IngredientResolver(db), RecipeResolver(db))
	if len(missing) > 0 {
		log.Printf("Seed dish %s references missing items %v", dish.Name, missing)
	}
	dish.TotalCost = total

	if err := db.Create(&dish).Error; err != nil {
		log.Printf("Failed to seed dish %s: %v", dish.Name, err)
	}
}

func seedExpenses(db *gorm.DB) {
	var count int64
	db.Model(&models.Expense{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []models.Expense{
		{Description: "Aluguel", Amount: 3000, Kind: models.ExpenseFixed, Category: "Imóvel", Date: "2023-05-01"},
		{Description: "Conta de Luz", Amount: 450, Kind: models.ExpenseFixed, Category: "Utilities", Date: "2023-05-10"},
		{Description: "Conta de Água", Amount: 200, Kind: models.ExpenseFixed, Category: "Utilities", Date: "2023-05-12"},
		{Description: "Marketing Digital", Amount: 800, Kind: models.ExpenseVariable, Category: "Marketing", Date: "2023-05-15"},
		{Description: "Manutenção de Equipamento", Amount: 500, Kind: models.ExpenseVariable, Category: "Manutenção", Date: "2023-05-20"},
	}
	for i := range defaults {
		if err := db.Create(&defaults[i]).Error; err != nil {
			log.Printf("Failed to seed expense %s: %v", defaults[i].Description, err)
		}
	}
}

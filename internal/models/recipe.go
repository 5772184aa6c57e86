package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/jinzhu/gorm"

	"custochef/internal/costing"
)

// RecipeLines represents a recipe's ingredient lines stored as a JSON column
type RecipeLines []costing.RecipeLine

// Value converts the lines to a JSON string for storage
func (l RecipeLines) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan converts the database value back to a slice of lines
func (l *RecipeLines) Scan(value interface{}) error {
	if value == nil {
		*l = RecipeLines{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for RecipeLines")
	}
}

// Recipe represents a batch preparation composed from ingredients. TotalCost
// is the cost of the full batch as declared; it is recomputed from current
// ingredient data on every write.
type Recipe struct {
	gorm.Model
	Name        string       `json:"name"`
	Yield       float64      `json:"yield"`
	GrossWeight float64      `json:"gross_weight"`
	Unit        costing.Unit `json:"unit"`
	TotalCost   float64      `json:"total_cost"`
	Lines       RecipeLines  `json:"lines" gorm:"type:text"`
}

// TableName sets the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

// BatchView returns the costing view consumed by the dish aggregator.
func (r *Recipe) BatchView() costing.RecipeBatch {
	return costing.RecipeBatch{
		TotalCost: r.TotalCost,
		Yield:     r.Yield,
		Unit:      r.Unit,
	}
}

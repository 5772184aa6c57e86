package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/jinzhu/gorm"

	"custochef/internal/costing"
)

// DishItems represents a dish's line items stored as a JSON column
type DishItems []costing.DishItem

// Value converts the items to a JSON string for storage
func (d DishItems) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "[]", nil
	}
	return json.Marshal(d)
}

// Scan converts the database value back to a slice of items
func (d *DishItems) Scan(value interface{}) error {
	if value == nil {
		*d = DishItems{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return errors.New("unsupported type for DishItems")
	}
}

// Dish represents a sellable plate composed from recipes and ingredients.
// TotalCost is recomputed server-side on every write; SellingPrice is the
// price the operator actually charges.
type Dish struct {
	gorm.Model
	Name         string    `json:"name"`
	TotalCost    float64   `json:"total_cost"`
	SellingPrice float64   `json:"selling_price"`
	Items        DishItems `json:"items" gorm:"type:text"`
}

// TableName sets the table name for Dish
func (Dish) TableName() string {
	return "dishes"
}

package model

import "resto/shared/model"

const (
	TableName  = "menu_items"
	EntityName = "menu_item"

	FieldID           = "id"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldPrice        = "price"
	FieldImage        = "image"
	FieldCategory     = "category"
	FieldIsVegetarian = "is_vegetarian"
	FieldIsVegan      = "is_vegan"
	FieldIsGlutenFree = "is_gluten_free"
	FieldIsSpicy      = "is_spicy"
)

const (
	CategoryStarters   = "Starters"
	CategoryMainCourse = "Main Course"
	CategoryDesserts   = "Desserts"
	CategoryBeverages  = "Beverages"
)

// Categories is the fixed set a menu item may belong to.
var Categories = []string{CategoryStarters, CategoryMainCourse, CategoryDesserts, CategoryBeverages}

type MenuItem struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	Price        int64  `db:"price"`
	Image        string `db:"image"`
	Category     string `db:"category"`
	IsVegetarian bool   `db:"is_vegetarian"`
	IsVegan      bool   `db:"is_vegan"`
	IsGlutenFree bool   `db:"is_gluten_free"`
	IsSpicy      bool   `db:"is_spicy"`
	model.Metadata
}

package dto

import (
	"net/http"
	"slices"

	"resto/internal/domains/menu/model"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
)

const (
	queryVegetarian = "vegetarian"
	queryVegan      = "vegan"
	queryGlutenFree = "gluten_free"
	querySpicy      = "spicy"
)

// ListMenuRequest narrows the menu by category and dietary flags.
type ListMenuRequest struct {
	Category     string
	IsVegetarian *bool
	IsVegan      *bool
	IsGlutenFree *bool
	IsSpicy      *bool
}

func (l *ListMenuRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	l.Category = query.Get(constant.RequestParamCategory)
	l.IsVegetarian = shared.ConvertStringToBool(query.Get(queryVegetarian))
	l.IsVegan = shared.ConvertStringToBool(query.Get(queryVegan))
	l.IsGlutenFree = shared.ConvertStringToBool(query.Get(queryGlutenFree))
	l.IsSpicy = shared.ConvertStringToBool(query.Get(querySpicy))
}

// ValidCategory reports whether the category is empty or one of model.Categories.
func (l *ListMenuRequest) ValidCategory() bool {
	return l.Category == constant.Empty || slices.Contains(model.Categories, l.Category)
}

func (l *ListMenuRequest) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if l.Category != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Value:    l.Category,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	flags := []struct {
		field string
		value *bool
	}{
		{model.FieldIsVegetarian, l.IsVegetarian},
		{model.FieldIsVegan, l.IsVegan},
		{model.FieldIsGlutenFree, l.IsGlutenFree},
		{model.FieldIsSpicy, l.IsSpicy},
	}

	for _, flag := range flags {
		if flag.value == nil {
			continue
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    flag.field,
			Value:    *flag.value,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return filter
}

type CreateMenuItemRequest struct {
	Name         string `json:"name"           validate:"required,max=100"`
	Description  string `json:"description"    validate:"required"`
	Price        int64  `json:"price"          validate:"gte=0"`
	Image        string `json:"image"          validate:"required"`
	Category     string `json:"category"       validate:"required,oneof=Starters 'Main Course' Desserts Beverages"`
	IsVegetarian bool   `json:"is_vegetarian"`
	IsVegan      bool   `json:"is_vegan"`
	IsGlutenFree bool   `json:"is_gluten_free"`
	IsSpicy      bool   `json:"is_spicy"`
}

func (c *CreateMenuItemRequest) ToModel(user string) model.MenuItem {
	return model.MenuItem{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Description:  c.Description,
		Price:        c.Price,
		Image:        c.Image,
		Category:     c.Category,
		IsVegetarian: c.IsVegetarian,
		IsVegan:      c.IsVegan,
		IsGlutenFree: c.IsGlutenFree,
		IsSpicy:      c.IsSpicy,
		Metadata:     gModel.NewMetadata(timezone.Now(), user),
	}
}

// UpdateImageRequest carries the new image as a data URL (data:image/png;base64,...).
type UpdateImageRequest struct {
	Image string `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
}

type MenuItemResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Image        string `json:"image"`
	Category     string `json:"category"`
	IsVegetarian bool   `json:"is_vegetarian"`
	IsVegan      bool   `json:"is_vegan"`
	IsGlutenFree bool   `json:"is_gluten_free"`
	IsSpicy      bool   `json:"is_spicy"`
	gDto.Metadata
}

func (r *MenuItemResponse) FromModel(model model.MenuItem) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Image = model.Image
	r.Category = model.Category
	r.IsVegetarian = model.IsVegetarian
	r.IsVegan = model.IsVegan
	r.IsGlutenFree = model.IsGlutenFree
	r.IsSpicy = model.IsSpicy
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.MenuItem) []MenuItemResponse {
	res := make([]MenuItemResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

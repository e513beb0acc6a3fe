package dto_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/internal/domains/menu/model"
	"resto/internal/domains/menu/model/dto"
)

func TestListMenuRequest_FromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/menu?category=Desserts&vegetarian=true&spicy=false", nil)

	var req dto.ListMenuRequest
	req.FromRequest(r)

	assert.Equal(t, model.CategoryDesserts, req.Category)
	require.NotNil(t, req.IsVegetarian)
	assert.True(t, *req.IsVegetarian)
	require.NotNil(t, req.IsSpicy)
	assert.False(t, *req.IsSpicy)
	assert.Nil(t, req.IsVegan)
	assert.Nil(t, req.IsGlutenFree)

	filter := req.ToFilter()
	where, args := filter.GetWhereClause()
	assert.Equal(t, "(menu_items.category = :category AND menu_items.is_vegetarian = :is_vegetarian AND menu_items.is_spicy = :is_spicy)", where)
	assert.Len(t, args, 3)
}

func TestListMenuRequest_ValidCategory(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{"", true},
		{model.CategoryStarters, true},
		{model.CategoryMainCourse, true},
		{"main course", false},
		{"Snacks", false},
	}

	for _, tt := range tests {
		req := dto.ListMenuRequest{Category: tt.category}
		assert.Equal(t, tt.want, req.ValidCategory(), tt.category)
	}
}

func TestListMenuRequest_EmptyFilter(t *testing.T) {
	req := dto.ListMenuRequest{}

	filter := req.ToFilter()
	where, _ := filter.GetWhereClause()
	assert.Empty(t, where)
}

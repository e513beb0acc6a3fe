package shared_test

import (
	"context"
	"errors"
	"resto/shared"
	"resto/shared/cache/mocks"
	"resto/shared/constant"
	"resto/shared/dto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "numeric true", input: "1", expected: boolPtr(true)},
		{name: "upper case false", input: "FALSE", expected: boolPtr(false)},
		{name: "invalid string returns nil", input: "veg", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type patch struct {
		Status   string  `db:"status"`
		Requests *string `db:"requests"`
		Guests   *int    `db:"guests"`
		Ignored  string
	}

	requests := "window seat"
	guests := 4

	tests := []struct {
		name     string
		data     any
		expected map[string]any
	}{
		{
			name:     "only set fields",
			data:     patch{Status: "completed", Ignored: "x"},
			expected: map[string]any{"status": "completed"},
		},
		{
			name:     "pointers are dereferenced",
			data:     &patch{Requests: &requests, Guests: &guests},
			expected: map[string]any{"requests": "window seat", "guests": 4},
		},
		{
			name:     "empty patch keeps metadata only",
			data:     patch{},
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data, constant.ContextSystem)

			assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
			assert.Equal(t, constant.ContextSystem, result[constant.FieldModifiedBy])

			delete(result, constant.FieldModifiedAt)
			delete(result, constant.FieldModifiedBy)

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("123", "id", "reservations")

	expected := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "123",
				Operator: dto.FilterOperatorEq,
				Table:    "reservations",
			},
		},
	}

	assert.Equal(t, expected, result)

	where, args := result.GetWhereClause()
	assert.Equal(t, "(reservations.id = :id)", where)
	assert.Equal(t, "123", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "menu:get:abc", shared.BuildCacheKey("menu:get", "abc"))
	assert.Equal(t, "rate:1.2.3.4:curl", shared.BuildCacheKey("rate", "1.2.3.4", "curl"))
	assert.Equal(t, "menu:gets", shared.BuildCacheKey("menu:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	starters := dto.FilterGroup{Filters: []any{dto.Filter{Field: "category", Value: "Starters", Operator: dto.FilterOperatorEq}}}
	desserts := dto.FilterGroup{Filters: []any{dto.Filter{Field: "category", Value: "Desserts", Operator: dto.FilterOperatorEq}}}

	first := shared.BuildCacheKeyWithQuery("menu:gets", params, starters)
	again := shared.BuildCacheKeyWithQuery("menu:gets", params, starters)
	other := shared.BuildCacheKeyWithQuery("menu:gets", params, desserts)

	assert.True(t, strings.HasPrefix(first, "menu:gets:"))
	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "menu:gets:*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "menu:gets")

	redisCache.EXPECT().Clear(gomock.Any(), "menu:count:*").Return(errors.New("redis down"))
	require.NotPanics(t, func() {
		shared.InvalidateCaches(context.Background(), redisCache, "menu:count")
	})
}

func boolPtr(b bool) *bool {
	return &b
}

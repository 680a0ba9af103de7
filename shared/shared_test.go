package shared_test

import (
	"context"
	"errors"
	"hotel/shared"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToInt(t *testing.T) {
	got, err := shared.ConvertStringToInt(" 4 ")
	assert.NoError(t, err)
	assert.Equal(t, 4, got)

	_, err = shared.ConvertStringToInt("four")
	assert.Error(t, err)
}

func TestConvertStringToFloat(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToFloat(""))
	assert.Nil(t, shared.ConvertStringToFloat("cheap"))

	got := shared.ConvertStringToFloat("99.5")
	if assert.NotNil(t, got) {
		assert.InDelta(t, 99.5, *got, 0.0001)
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no data", total: 0, limit: 10, expected: 1},
		{name: "no limit", total: 25, limit: 0, expected: 1},
		{name: "exact pages", total: 20, limit: 10, expected: 2},
		{name: "partial last page", total: 21, limit: 10, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type patch struct {
		Status      string   `db:"status"`
		AdminNotes  *string  `db:"admin_notes"`
		Guests      *int     `db:"number_of_guests"`
		TotalPrice  *float64 `db:"total_price"`
		Ignored     string   `db:"-"`
		Untagged    string
		EmptyStatus string `db:"payment_status"`
	}

	zero := 0
	notes := ""

	result := shared.TransformFields(patch{
		Status:     "read",
		AdminNotes: &notes,
		Guests:     &zero,
		Ignored:    "x",
		Untagged:   "y",
	}, "admin-1")

	assert.Equal(t, "read", result["status"])
	assert.Equal(t, "", result["admin_notes"])
	assert.Equal(t, 0, result["number_of_guests"])
	assert.NotContains(t, result, "total_price")
	assert.NotContains(t, result, "payment_status")
	assert.NotContains(t, result, "-")
	assert.Equal(t, "admin-1", result[constant.FieldModifiedBy])

	_, ok := result[constant.FieldModifiedAt].(time.Time)
	assert.True(t, ok)
	assert.Len(t, result, 5)
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("room-1", "id", "rooms")

	assert.Equal(t, dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: "room-1", Operator: dto.FilterOperatorEq, Table: "rooms"},
		},
	}, result)

	where, args := result.GetWhereClause()
	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "room-1"}, args)
}

func TestFilterByIDs(t *testing.T) {
	result := shared.FilterByIDs([]string{"u1", "u2"}, "id", "users")
	where, args := result.GetWhereClause()

	assert.Equal(t, "(users.id IN (:id_0, :id_1) )", where)
	assert.Equal(t, map[string]any{"id_0": "u1", "id_1": "u2"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "limiter:127.0.0.1:curl", shared.BuildCacheKey("limiter", "127.0.0.1", "curl"))
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	single := dto.And(dto.Filter{Field: "room_type", Value: "single", Operator: dto.FilterOperatorEq})
	double := dto.And(dto.Filter{Field: "room_type", Value: "double", Operator: dto.FilterOperatorEq})

	first := shared.BuildCacheKeyWithQuery("room:gets", dto.NewestFirst(), single)
	second := shared.BuildCacheKeyWithQuery("room:gets", dto.NewestFirst(), single)
	other := shared.BuildCacheKeyWithQuery("room:gets", dto.NewestFirst(), double)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.True(t, strings.HasPrefix(first, "room:gets:"))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets:*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "room:count:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "room:count")
}

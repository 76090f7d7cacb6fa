package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodItemsScan(t *testing.T) {
	var items FoodItems
	require.NoError(t, items.Scan([]byte(`[{"id":"a","name":"Rice","quantity":"100g","calories":130}]`)))
	require.Len(t, items, 1)
	assert.Equal(t, "Rice", items[0].Name)
	assert.Equal(t, 130.0, items[0].Calories)

	require.NoError(t, items.Scan("null"))
	assert.NotNil(t, items)
	assert.Empty(t, items)

	require.NoError(t, items.Scan(nil))
	assert.Empty(t, items)

	assert.Error(t, items.Scan(42))
}

func TestFoodItemsValueNil(t *testing.T) {
	v, err := FoodItems(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}

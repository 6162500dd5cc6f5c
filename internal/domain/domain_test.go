package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBusinessError(t *testing.T) {
	assert.True(t, IsBusinessError(ErrPlayerNotFound))
	assert.True(t, IsBusinessError(fmt.Errorf("%w: need 100", ErrInsufficientFunds)))
	assert.True(t, IsBusinessError(ErrUnknownBoss))
	assert.True(t, IsBusinessError(ErrUnknownItem))
	assert.True(t, IsBusinessError(ErrInvalidInput))

	assert.False(t, IsBusinessError(nil))
	assert.False(t, IsBusinessError(fmt.Errorf("%w: tx: reset", ErrStoreUnavailable)))
	assert.False(t, IsBusinessError(ErrNegativeBalance))
}

func TestCountByName(t *testing.T) {
	counts := CountByName([]InventoryEntry{
		{ID: 1, ItemName: StarterItemName, Quantity: 1},
		{ID: 2, ItemName: "potion", Quantity: 1},
		{ID: 3, ItemName: "potion", Quantity: 2},
	})

	assert.Equal(t, map[string]int{StarterItemName: 1, "potion": 3}, counts)
	assert.Empty(t, CountByName(nil))
}

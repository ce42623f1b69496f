package tools

import (
	"context"
	"testing"

	"mealmind/catalog/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryGet_Run(t *testing.T) {
	data := []byte(`[
		{"id": "1", "name": "Eggs (Trays)", "cost": 450, "unit": "tray"},
		{"id": "2", "name": "Sukuma Wiki", "cost": 50, "unit": "bunch"}
	]`)

	tool := NewInventoryGet(storage.NewTestSource(data))
	result, err := tool.Run(context.Background(), nil)
	require.NoError(t, err)

	inventory, ok := result["inventory"].([]map[string]any)
	require.True(t, ok, "expected inventory list in result")
	require.Len(t, inventory, 2)
	assert.Equal(t, "Eggs (Trays)", inventory[0]["name"])
	assert.Equal(t, 50, inventory[1]["cost"])
}

func TestInventoryGet_RunErrors(t *testing.T) {
	t.Run("source failure", func(t *testing.T) {
		tool := NewInventoryGet(storage.NewTestSourceWithError())
		_, err := tool.Run(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read inventory")
	})

	t.Run("malformed data", func(t *testing.T) {
		tool := NewInventoryGet(storage.NewTestSource([]byte("{oops")))
		_, err := tool.Run(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse inventory")
	})
}

func TestRegistry(t *testing.T) {
	registry, err := NewRegistry(newToolEngine(t), storage.NewTestSource([]byte("[]")), fixedNow)
	require.NoError(t, err)

	assert.Len(t, registry.GetTools(), 2)

	tool, err := registry.GetTool("candidates_get")
	require.NoError(t, err)
	assert.Equal(t, "candidates_get", tool.Name())

	_, err = registry.GetTool("recipe_get")
	require.Error(t, err)
}

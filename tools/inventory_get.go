package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"mealmind"
	"mealmind/catalog/storage"
)

// InventoryGet returns the user's current food inventory.
type InventoryGet struct{ source storage.Source }

func NewInventoryGet(source storage.Source) *InventoryGet {
	return &InventoryGet{source: source}
}

func (t *InventoryGet) Name() string  { return "inventory_get" }
func (t *InventoryGet) Title() string { return "Get Inventory" }
func (t *InventoryGet) Description() string {
	return "Gets the food items the user currently has at home, with their costs."
}

func (t *InventoryGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (t *InventoryGet) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"inventory": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"id":   {Type: "string"},
						"name": {Type: "string"},
						"cost": {Type: "integer"},
						"unit": {Type: "string"},
					},
				},
			},
		},
		Required: []string{"inventory"},
	}
}

func (t *InventoryGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	items, err := t.load(ctx)
	if err != nil {
		return nil, err
	}

	inventory := make([]map[string]any, 0, len(items))
	for _, item := range items {
		inventory = append(inventory, map[string]any{
			"id":   item.ID,
			"name": item.Name,
			"cost": item.Cost,
			"unit": item.Unit,
		})
	}
	return map[string]any{"inventory": inventory}, nil
}

func (t *InventoryGet) load(ctx context.Context) ([]mealmind.InventoryItem, error) {
	b, err := t.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	var items []mealmind.InventoryItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("parse inventory: %w", err)
	}
	return items, nil
}

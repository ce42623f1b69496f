package tools

import (
	"fmt"
	"time"

	"mealmind/catalog/storage"
	"mealmind/fallback"
)

// Provider hands out tools by name. Satisfied by Registry.
type Provider interface {
	GetTools() []Tool
	GetTool(name string) (Tool, error)
}

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates the read-only tool registry: the candidate filter over
// the fallback engine plus the user's inventory.
func NewRegistry(engine *fallback.Engine, inventory storage.Source, now func() time.Time) (*Registry, error) {
	tools := map[string]Tool{
		"candidates_get": NewCandidatesGet(engine, now),
		"inventory_get":  NewInventoryGet(inventory),
	}

	registry := Registry(tools)
	return &registry, nil
}

// GetTools returns all tools in the registry as a slice
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}

package engine

import (
	"sync"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/recallhq/recall-go-sdk/core"
)

// ToolRegistry holds the tools an engine can call. Registration order
// is preserved so the tool list sent to the API is stable.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]core.Tool
	order []string
}

// NewToolRegistry creates an empty registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]core.Tool)}
}

// Register adds a tool. Re-registering a name replaces the previous
// tool but keeps its position.
func (r *ToolRegistry) Register(tool core.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := tool.Name()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// Get returns the tool with the given name.
func (r *ToolRegistry) Get(name string) (core.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// Names returns the registered tool names in registration order.
func (r *ToolRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tools.
func (r *ToolRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// ToAPITools converts all registered tools to API tool params.
func (r *ToolRegistry) ToAPITools() []anthropic.ToolUnionParam {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]anthropic.ToolUnionParam, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, toAPITool(r.tools[name].Definition()))
	}
	return out
}

// ToAPIToolsFiltered converts only the named tools, in registration
// order. Unknown names are ignored.
func (r *ToolRegistry) ToAPIToolsFiltered(names ...string) []anthropic.ToolUnionParam {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	var out []anthropic.ToolUnionParam
	for _, name := range r.order {
		if wanted[name] {
			out = append(out, toAPITool(r.tools[name].Definition()))
		}
	}
	return out
}

func toAPITool(def core.ToolDefinition) anthropic.ToolUnionParam {
	schema := anthropic.ToolInputSchemaParam{
		Properties: def.InputSchema["properties"],
	}
	if required, ok := def.InputSchema["required"].([]string); ok {
		schema.Required = required
	}
	return anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        def.ToolName,
			Description: anthropic.String(def.ToolDescription),
			InputSchema: schema,
		},
	}
}

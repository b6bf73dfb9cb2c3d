package tool

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrToolNotFound is returned by [Catalog.Call] for an unregistered name.
var ErrToolNotFound = errors.New("calc: tool not found")

// Catalog is a thread-safe collection of tools keyed by lowercase name.
type Catalog struct {
	mu    sync.RWMutex
	tools map[string]GenericTool
}

// NewCatalog creates a catalog holding tools.
func NewCatalog(tools ...GenericTool) *Catalog {
	c := &Catalog{tools: make(map[string]GenericTool, len(tools))}
	c.AddTools(tools...)
	return c
}

// AddTools registers tools under their lowercased ToolInfo().Name, replacing
// any tool already registered under the same name.
func (c *Catalog) AddTools(tools ...GenericTool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tools {
		c.tools[strings.ToLower(t.ToolInfo().Name)] = t
	}
}

// Get retrieves a tool by name (case-insensitive).
func (c *Catalog) Get(name string) (GenericTool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tools[strings.ToLower(name)]
	return t, ok
}

// Has reports whether a tool with the given name is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Remove unregisters a tool and reports whether it was present.
func (c *Catalog) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := strings.ToLower(name)
	if _, ok := c.tools[key]; !ok {
		return false
	}
	delete(c.tools, key)
	return true
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.tools))
	for name := range c.tools {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Size returns the number of registered tools.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tools)
}

// Call invokes the named tool with inputJSON.
func (c *Catalog) Call(ctx context.Context, name, inputJSON string) (string, error) {
	t, ok := c.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrToolNotFound, name)
	}
	return t.Call(ctx, inputJSON)
}

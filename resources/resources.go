// Package resources resolves package names to catalog resources
package resources

import (
	"sync"

	"discover/models"

	"github.com/samber/lo"
)

// Lookup resolves a package name to its resource. A miss is a normal outcome.
type Lookup interface {
	ResourceByPackageName(name string) (models.Resource, bool)
}

// LookupFunc adapts a plain function to Lookup
type LookupFunc func(name string) (models.Resource, bool)

func (f LookupFunc) ResourceByPackageName(name string) (models.Resource, bool) {
	return f(name)
}

// Catalog is an in-memory Lookup keyed by package name
type Catalog struct {
	sync.RWMutex
	resources map[string]models.Resource
}

func NewCatalog(resources ...models.Resource) *Catalog {
	return &Catalog{
		resources: lo.KeyBy(resources, func(r models.Resource) string {
			return r.PackageName
		}),
	}
}

func (c *Catalog) ResourceByPackageName(name string) (models.Resource, bool) {
	c.RLock()
	defer c.RUnlock()
	resource, ok := c.resources[name]
	return resource, ok
}

func (c *Catalog) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.resources)
}

// Chain tries each lookup in order and returns the first hit
type Chain []Lookup

func (c Chain) ResourceByPackageName(name string) (models.Resource, bool) {
	for _, lookup := range c {
		if resource, ok := lookup.ResourceByPackageName(name); ok {
			return resource, true
		}
	}
	return models.Resource{}, false
}

var _ Lookup = (*Catalog)(nil)
var _ Lookup = Chain(nil)
var _ Lookup = LookupFunc(nil)

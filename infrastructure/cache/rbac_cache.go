package cache

import (
	"sort"
	"sync"
)

// Resource is one route a role may call, named by its screen code.
type Resource struct {
	UserResourceCode string
	Path             string
	Method           string
	Role             string
}

// RbacRolesCache indexes route resources by role. Screen codes feed the nav;
// resources feed the per-request path check.
type RbacRolesCache struct {
	mu        sync.RWMutex
	resources map[string][]Resource
	codes     map[string]map[string]struct{}
}

func NewRbacRolesCache() *RbacRolesCache {
	return &RbacRolesCache{
		resources: make(map[string][]Resource),
		codes:     make(map[string]map[string]struct{}),
	}
}

func (c *RbacRolesCache) Add(role string, r Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources[role] = append(c.resources[role], r)
	if c.codes[role] == nil {
		c.codes[role] = make(map[string]struct{})
	}
	c.codes[role][r.UserResourceCode] = struct{}{}
}

func (c *RbacRolesCache) GetRolesAndResources(roles []string) []Resource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Resource, 0)
	for _, role := range roles {
		out = append(out, c.resources[role]...)
	}
	return out
}

// Permissions returns the screen codes granted to any of roles.
func (c *RbacRolesCache) Permissions(roles []string) map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]int)
	for _, role := range roles {
		for code := range c.codes[role] {
			out[code] = 1
		}
	}
	return out
}

// GetAllRouteNames returns every registered screen code.
func (c *RbacRolesCache) GetAllRouteNames() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]int)
	for _, codes := range c.codes {
		for code := range codes {
			out[code] = 1
		}
	}
	return out
}

func (c *RbacRolesCache) RouteNamesSorted() []string {
	all := c.GetAllRouteNames()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

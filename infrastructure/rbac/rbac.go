package rbac

import (
	"strings"

	"inbound/infrastructure/cache"
)

const (
	RoleAdmin    = "admin"
	RoleReceiver = "receiver"
)

// Roles lists the assignable roles, admin first.
func Roles() []string {
	return []string{RoleAdmin, RoleReceiver}
}

// ValidRole reports whether role is assignable. Comparison is exact; callers
// normalize case.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleReceiver
}

// Rbac registers route resources per role and answers access checks. Admins
// are granted every registered screen.
type Rbac struct {
	cache *cache.RbacRolesCache
}

func New(c *cache.RbacRolesCache) *Rbac {
	return &Rbac{cache: c}
}

func (r *Rbac) Add(role, code, method, path string) {
	if r == nil || r.cache == nil {
		return
	}
	r.cache.Add(role, cache.Resource{
		Role:             role,
		UserResourceCode: code,
		Method:           strings.ToUpper(method),
		Path:             path,
	})
}

// Permissions returns the screen codes the roles may open.
func (r *Rbac) Permissions(roles []string) map[string]int {
	if r == nil || r.cache == nil {
		return make(map[string]int)
	}
	if isAdmin(roles) {
		return r.cache.GetAllRouteNames()
	}
	return r.cache.Permissions(roles)
}

// Allows reports whether any of roles may call method on urlPath.
func (r *Rbac) Allows(roles []string, urlPath, method string) bool {
	if isAdmin(roles) {
		return true
	}
	if r == nil || r.cache == nil || len(roles) == 0 {
		return false
	}
	return ValidateResourceAccess(r.cache.GetRolesAndResources(roles), urlPath, method)
}

func isAdmin(roles []string) bool {
	for _, role := range roles {
		if role == RoleAdmin {
			return true
		}
	}
	return false
}

func ValidateResourceAccess(resources []cache.Resource, urlPath, method string) bool {
	method = strings.ToUpper(method)
	for _, res := range resources {
		if res.Method == method && matchPath(res.Path, urlPath) {
			return true
		}
	}
	return false
}

// matchPath supports "*" as one segment, or as a trailing catch-all.
func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	patternSeg := strings.Split(strings.Trim(pattern, "/"), "/")
	pathSeg := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternSeg) == len(pathSeg) {
		for i := range patternSeg {
			if patternSeg[i] != "*" && patternSeg[i] != pathSeg[i] {
				return false
			}
		}
		return true
	}

	last := len(patternSeg) - 1
	if patternSeg[last] != "*" || len(pathSeg) < last {
		return false
	}
	for i := 0; i < last; i++ {
		if patternSeg[i] != "*" && patternSeg[i] != pathSeg[i] {
			return false
		}
	}
	return true
}

// Package rbac holds the role→permission policy for the three app roles
// and the chi middlewares that enforce it.
package rbac

import "strings"

var RolePermissions = map[string][]string{
	"student": {
		"course:view",
		"course:enroll",
		"progress:view-own",
		"progress:update-own",
		"quiz:submit",
		"quiz:view-own",
	},
	"teacher": {
		"course:view",
		"course:create",
		"course:delete-own",
		"progress:view-own",
		"progress:update-own",
		"progress:view-all",
		"quiz:submit",
		"quiz:view-own",
		"users:list",
	},
	"admin": {
		"*", // everything
	},
}

type Checker struct {
	RolePermissions map[string][]string
}

func NewChecker(rp map[string][]string) *Checker {
	if rp == nil {
		rp = RolePermissions
	}
	return &Checker{RolePermissions: rp}
}

func (c *Checker) Has(role, perm string) bool {
	for _, p := range c.RolePermissions[role] {
		if matchPerm(p, perm) {
			return true
		}
	}
	return false
}

func (c *Checker) Any(role string, perms ...string) bool {
	for _, p := range perms {
		if c.Has(role, p) {
			return true
		}
	}
	return false
}

// A trailing * in a policy entry matches any permission with that prefix.
func matchPerm(pattern, perm string) bool {
	if pattern == "*" || pattern == perm {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(perm, strings.TrimSuffix(pattern, "*"))
	}
	return false
}

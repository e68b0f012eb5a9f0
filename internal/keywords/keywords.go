// Package keywords suggests role-specific keywords and merges them into a
// record's skills line.
package keywords

import (
	"strings"

	"github.com/dshills/atscritic/internal/catalog"
)

// Lookup returns the keywords of the first catalog role contained in role,
// compared case-insensitively. An empty role or no match yields an empty,
// non-nil slice. The returned slice is a copy.
func Lookup(c *catalog.Catalog, role string) []string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return []string{}
	}
	for _, rk := range c.RoleKeywords {
		if strings.Contains(role, rk.Role) {
			out := make([]string, len(rk.Keywords))
			copy(out, rk.Keywords)
			return out
		}
	}
	return []string{}
}

// Match reports the catalog role name that Lookup would select for role,
// or "" when none matches.
func Match(c *catalog.Catalog, role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return ""
	}
	for _, rk := range c.RoleKeywords {
		if strings.Contains(role, rk.Role) {
			return rk.Role
		}
	}
	return ""
}

// Inject appends every keyword not already present in skills (case-insensitive
// substring check) as comma-separated text. It returns the new skills line and
// the keywords that were added, in input order.
func Inject(skills string, kws []string) (string, []string) {
	lower := strings.ToLower(skills)
	added := []string{}
	for _, kw := range kws {
		k := strings.TrimSpace(kw)
		if k == "" {
			continue
		}
		lk := strings.ToLower(k)
		if strings.Contains(lower, lk) {
			continue
		}
		added = append(added, k)
		lower += ", " + lk
	}
	if len(added) == 0 {
		return skills, added
	}

	out := strings.TrimRight(strings.TrimSpace(skills), ",")
	if out == "" {
		return strings.Join(added, ", "), added
	}
	return out + ", " + strings.Join(added, ", "), added
}

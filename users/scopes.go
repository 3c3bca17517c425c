package users

import (
	"sort"
	"strings"
)

// ScopeUnauthorized is granted to accounts created without explicit scopes.
const ScopeUnauthorized = "unauthorized"

const (
	ScopeWhoAmI   = "users/whoami"
	ScopeLogsRead = "logs/read"
)

// Scopes is a set of permission labels kept sorted and free of duplicates.
// Its canonical storage form is the comma separated String().
type Scopes []string

// NewScopes normalises values into a Scopes set.
func NewScopes(values ...string) Scopes {
	seen := make(map[string]struct{}, len(values))
	out := make(Scopes, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ParseScopes reads the stored comma separated form. It tolerates list
// punctuation ("['a', 'b']") written by older tooling.
func ParseScopes(raw string) Scopes {
	cleaned := strings.NewReplacer("[", "", "]", "", "'", "", `"`, "").Replace(raw)
	return NewScopes(strings.Split(cleaned, ",")...)
}

func (s Scopes) String() string {
	return strings.Join(s, ",")
}

func (s Scopes) Has(scope string) bool {
	for _, v := range s {
		if v == scope {
			return true
		}
	}
	return false
}

// Missing returns the required scopes absent from s, in the order given.
func (s Scopes) Missing(required ...string) []string {
	var missing []string
	for _, r := range required {
		if !s.Has(r) {
			missing = append(missing, r)
		}
	}
	return missing
}

func (s Scopes) Contains(required ...string) bool {
	return len(s.Missing(required...)) == 0
}

// Unknown returns the members of s that allowed does not contain.
func (s Scopes) Unknown(allowed Scopes) []string {
	return allowed.Missing(s...)
}

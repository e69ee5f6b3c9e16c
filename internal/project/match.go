package project

import (
	"fmt"
	"strings"

	"github.com/marloe/standup/internal/apperr"
)

// Match resolves a user-typed name fragment against known names. Policy, in
// priority order: exact case-insensitive equality, then a unique prefix
// match, then a unique substring match. A tie at the winning level is
// ambiguous and returns ok == false; the caller decides the fallback
// (typically a pre-filtered dashboard). No similarity scoring: the
// tie-break tiers are deterministic.
func Match(query string, names []string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	var prefix, substr []string
	for _, name := range names {
		n := strings.ToLower(name)
		if n == q {
			return name, true
		}
		if strings.HasPrefix(n, q) {
			prefix = append(prefix, name)
		} else if strings.Contains(n, q) {
			substr = append(substr, name)
		}
	}
	if len(prefix) == 1 {
		return prefix[0], true
	}
	if len(prefix) > 1 {
		return "", false
	}
	if len(substr) == 1 {
		return substr[0], true
	}
	return "", false
}

// Resolve runs Match over a project list. A failed match distinguishes
// apperr.ErrAmbiguous (several candidates, caller may fall back to a
// narrowed list) from apperr.ErrNotFound (nothing resembles the query).
func Resolve(projects []Project, query string) (Project, error) {
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	name, ok := Match(query, names)
	if !ok {
		q := strings.ToLower(strings.TrimSpace(query))
		for _, n := range names {
			if q != "" && strings.Contains(strings.ToLower(n), q) {
				return Project{}, fmt.Errorf("project %q: %w", query, apperr.ErrAmbiguous)
			}
		}
		return Project{}, fmt.Errorf("project %q: %w", query, apperr.ErrNotFound)
	}
	for _, p := range projects {
		if p.Name == name {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("project %q: %w", query, apperr.ErrNotFound)
}

// Normalize maps value onto the matching preset spelling, case-insensitively.
// Unknown values pass through unchanged so custom statuses survive.
func Normalize(value string, presets []string) string {
	if value == "" {
		return ""
	}
	for _, p := range presets {
		if strings.EqualFold(value, p) {
			return p
		}
	}
	return value
}

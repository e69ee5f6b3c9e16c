package project_test

import (
	"errors"
	"testing"

	"github.com/marloe/standup/internal/apperr"
	"github.com/marloe/standup/internal/project"
)

func TestMatch(t *testing.T) {
	names := []string{"alpha", "alphabet", "beta"}

	cases := []struct {
		query string
		want  string
		ok    bool
	}{
		{"alpha", "alpha", true},    // exact beats the prefix tie
		{"ALPHA", "alpha", true},    // case-insensitive
		{"alph", "", false},         // two prefix matches: ambiguous
		{"bet", "beta", true},       // unique prefix
		{"et", "", false},           // two substring matches: ambiguous
		{"phabe", "alphabet", true}, // unique substring
		{"zzz", "", false},
		{"", "", false},
		{"  beta  ", "beta", true},
	}
	for _, c := range cases {
		got, ok := project.Match(c.query, names)
		if got != c.want || ok != c.ok {
			t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", c.query, got, ok, c.want, c.ok)
		}
	}
}

func TestMatch_PrefixBeatsSubstring(t *testing.T) {
	// "log" is a prefix of logger and a substring of catalog; the unique
	// prefix match wins even though substring matches exist.
	got, ok := project.Match("log", []string{"logger", "catalog"})
	if !ok || got != "logger" {
		t.Errorf("Match = (%q, %v), want (logger, true)", got, ok)
	}
}

func TestResolve(t *testing.T) {
	projects := []project.Project{{Name: "alpha"}, {Name: "alphabet"}, {Name: "beta"}}

	p, err := project.Resolve(projects, "bet")
	if err != nil || p.Name != "beta" {
		t.Errorf("Resolve = (%+v, %v)", p, err)
	}

	if _, err := project.Resolve(projects, "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Resolve(nope) = %v, want ErrNotFound", err)
	}
	// Two prefix candidates tie, so the failure is ambiguity, not absence.
	if _, err := project.Resolve(projects, "alph"); !errors.Is(err, apperr.ErrAmbiguous) {
		t.Errorf("Resolve(alph) = %v, want ErrAmbiguous", err)
	}
}

func TestNormalize(t *testing.T) {
	presets := []string{"Active", "Paused", "IN PROGRESS"}
	if got := project.Normalize("active", presets); got != "Active" {
		t.Errorf("Normalize(active) = %q", got)
	}
	if got := project.Normalize("in progress", presets); got != "IN PROGRESS" {
		t.Errorf("Normalize(in progress) = %q", got)
	}
	// Unknown values pass through so custom statuses survive.
	if got := project.Normalize("Shipped", presets); got != "Shipped" {
		t.Errorf("Normalize(Shipped) = %q", got)
	}
	if got := project.Normalize("", presets); got != "" {
		t.Errorf("Normalize(empty) = %q", got)
	}
}

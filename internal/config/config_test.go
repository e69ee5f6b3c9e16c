package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != ThemeDefault {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if len(cfg.StatusPresets) == 0 || len(cfg.PriorityPresets) == 0 {
		t.Error("expected preset defaults")
	}
	if len(cfg.DashboardColumns) == 0 {
		t.Error("expected default columns")
	}
}

func TestLoadFile_OverridesAndEnvExpansion(t *testing.T) {
	t.Setenv("STANDUP_TEST_BASE", "/srv/projects")
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "base_path: ${STANDUP_TEST_BASE}\noverview_dir: tracked\ntheme: ocean\nstatus_presets:\n- Active\n- Done\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BasePath != "/srv/projects" {
		t.Errorf("BasePath = %q", cfg.BasePath)
	}
	if got := cfg.ProjectsPath(); got != filepath.Join("/srv/projects", "tracked") {
		t.Errorf("ProjectsPath = %q", got)
	}
	if cfg.Theme != ThemeOcean {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if len(cfg.StatusPresets) != 2 || cfg.StatusPresets[1] != "Done" {
		t.Errorf("StatusPresets = %v", cfg.StatusPresets)
	}
	// Untouched keys keep their defaults.
	if len(cfg.PriorityPresets) != 3 {
		t.Errorf("PriorityPresets = %v", cfg.PriorityPresets)
	}
}

func TestLoadFile_DetectsBasePathWithConfigPresent(t *testing.T) {
	// A config file that sets other keys but omits base_path still gets
	// the auto-detected projects tree; validation is the caller's step.
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.MkdirAll(filepath.Join(home, "projects"), 0o755); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: forest\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "projects"); cfg.BasePath != want {
		t.Errorf("BasePath = %q, want %q", cfg.BasePath, want)
	}
	if cfg.Theme != ThemeForest {
		t.Errorf("Theme = %q", cfg.Theme)
	}
}

func TestValidate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.BasePath = "/srv/projects"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.BasePath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty base_path")
	}

	cfg.BasePath = "/srv/projects"
	cfg.Theme = "neon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestState_RoundTripAndCorrupt(t *testing.T) {
	t.Setenv("STANDUP_HOME", t.TempDir())

	if st := LoadState(); st.LastProject != "" {
		t.Errorf("missing state = %+v, want zero", st)
	}
	if err := SaveState(State{LastProject: "alpha"}); err != nil {
		t.Fatal(err)
	}
	if st := LoadState(); st.LastProject != "alpha" {
		t.Errorf("LastProject = %q", st.LastProject)
	}

	if err := os.WriteFile(StatePath(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if st := LoadState(); st.LastProject != "" {
		t.Errorf("corrupt state = %+v, want zero", st)
	}
}

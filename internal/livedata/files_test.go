package livedata

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRelativeTime(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{2 * 7 * 24 * time.Hour, "2w ago"},
		{90 * 24 * time.Hour, "3mo ago"},
	}
	for _, c := range cases {
		if got := relativeTime(c.d); got != c.want {
			t.Errorf("relativeTime(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestLastModified(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.txt")
	if err := os.WriteFile(old, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "new.txt"), []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Files in pruned directories are ignored even when newer.
	sub := filepath.Join(dir, ".git")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "HEAD"), []byte("z"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := LastModified(dir)
	if !strings.Contains(got, "new.txt") {
		t.Errorf("LastModified = %q, want newest visible file", got)
	}
	if !strings.HasPrefix(got, "just now") {
		t.Errorf("LastModified = %q, want a fresh age", got)
	}
}

func TestLastModified_MissingPath(t *testing.T) {
	if got := LastModified(""); got != Placeholder {
		t.Errorf("empty path = %q", got)
	}
	if got := LastModified(filepath.Join(t.TempDir(), "nope")); got != Placeholder {
		t.Errorf("missing path = %q", got)
	}
}

func TestGitActivity_NoRepo(t *testing.T) {
	if got := GitActivity(context.Background(), ""); got != Placeholder {
		t.Errorf("empty path = %q", got)
	}
	if got := GitActivity(context.Background(), t.TempDir()); got != "no repo" {
		t.Errorf("plain dir = %q", got)
	}
}

func TestDockerStatus_EmptyName(t *testing.T) {
	if got := DockerStatus(context.Background(), "", ""); got != Placeholder {
		t.Errorf("empty name = %q", got)
	}
}

// Package livedata shells out for the per-project live panel: git activity,
// docker container status, and newest-file age. Every call is bounded by a
// timeout and degrades to a placeholder string instead of an error, so a
// slow or missing tool never breaks the view.
package livedata

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Placeholder is shown when a live value is unavailable.
const Placeholder = "—"

const commandTimeout = 5 * time.Second

// GitActivity returns the most recent commit with its relative age, e.g.
// "abc1234 fix the build  (2d ago)", or "no repo" / "no commits" when the
// path has no usable history.
func GitActivity(ctx context.Context, codePath string) string {
	if codePath == "" {
		return Placeholder
	}
	if info, err := os.Stat(filepath.Join(codePath, ".git")); err != nil || !info.IsDir() {
		return "no repo"
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "git", "-C", codePath,
		"log", "--oneline", "-1", "--format=%h %s%n%ct").Output()
	if err != nil || len(out) == 0 {
		return "no commits"
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) < 2 {
		return "no commits"
	}
	summary := lines[0]
	epoch, err := strconv.ParseInt(strings.TrimSpace(lines[1]), 10, 64)
	if err != nil {
		return summary
	}
	ago := time.Since(time.Unix(epoch, 0))
	return summary + "  (" + relativeTime(ago) + ")"
}

// GitBranch returns the current branch name, or "".
func GitBranch(ctx context.Context, codePath string) string {
	if codePath == "" {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "git", "-C", codePath,
		"rev-parse", "--abbrev-ref", "HEAD").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

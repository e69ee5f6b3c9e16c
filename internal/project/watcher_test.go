package project_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marloe/standup/internal/project"
	"github.com/marloe/standup/internal/testutil"
)

func TestWatch_NotifiesOnChange(t *testing.T) {
	root, _ := testutil.TestTree(t)
	dir := testutil.AddProject(t, root, "alpha", "---\nStatus: Active\n---\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notified := make(chan struct{}, 1)
	done := make(chan error, 1)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	go func() {
		done <- project.Watch(ctx, root, logger, func() {
			select {
			case notified <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, project.OverviewFile), []byte("---\nStatus: Paused\n---\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-notified:
	case <-time.After(3 * time.Second):
		t.Fatal("no notification after file change")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

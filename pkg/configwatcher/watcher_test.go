package configwatcher

import (
	"context"
	"coursemaster_backend/internal/config"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = "storage:\n  type: minio\njwt:\n  secret: watcher-secret\nauth:\n  admin_emails: [\"first@example.com\"]\n"

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(baseConfig), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- WatchConfig(ctx, file, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// give the watcher time to register the directory
	time.Sleep(200 * time.Millisecond)
	updated := "storage:\n  type: minio\njwt:\n  secret: watcher-secret\nauth:\n  admin_emails: [\"Second@Example.com\"]\n"
	require.NoError(t, os.WriteFile(file, []byte(updated), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, []string{"second@example.com"}, cfg.Auth.AdminEmails)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchConfigIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(baseConfig), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	called := make(chan struct{}, 1)
	go func() {
		_ = WatchConfig(ctx, file, func(*config.Config) { called <- struct{}{} })
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-called:
		t.Fatal("reloaded for an unrelated file")
	case <-ctx.Done():
	}
}

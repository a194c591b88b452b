package logger_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joboy-dev/portfolio.api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, lines <-chan string, n int) []string {
	t.Helper()
	out := make([]string, 0, n)
	for len(out) < n {
		select {
		case line := <-lines:
			out = append(out, line)
		case <-time.After(3 * time.Second):
			t.Fatalf("timed out after %d of %d lines: %v", len(out), n, out)
		}
	}
	return out
}

func TestTail_NewestFirstThenFollow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\nfour\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	lines := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- logger.Tail(ctx, path, 2, func(line string) error {
			lines <- line
			return nil
		})
	}()

	assert.Equal(t, []string{"four", "three"}, collect(t, lines, 2))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	defer f.Close()

	// 미완성 줄은 개행이 올 때까지 보류됩니다
	_, err = f.WriteString("fi")
	require.NoError(t, err)
	_, err = f.WriteString("ve\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"five"}, collect(t, lines, 1))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("tail did not stop after cancel")
	}
}

func TestTail_DefaultLineCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	content := make([]byte, 0, 1024)
	for i := 0; i < logger.DefaultTailLines+20; i++ {
		content = append(content, "x\n"...)
	}
	require.NoError(t, os.WriteFile(path, content, 0644))

	ctx, cancel := context.WithCancel(context.Background())
	count := 0
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()
	err := logger.Tail(ctx, path, 0, func(string) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, logger.DefaultTailLines, count)
}

func TestTail_MissingFile(t *testing.T) {
	err := logger.Tail(context.Background(), filepath.Join(t.TempDir(), "missing.log"), 10, func(string) error { return nil })
	assert.True(t, os.IsNotExist(err))
}

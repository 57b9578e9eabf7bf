package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, FileName), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_ReadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[backend]
url = "http://search.internal:5000"
timeout_sec = 10
rate_limit = 2.5

[search]
default_limit = 8
sample_queries = ["lake house", "loft"]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://search.internal:5000", store.GetString("backend.url"))
	assert.Equal(t, 10, store.GetInt("backend.timeout_sec"))
	assert.InDelta(t, 2.5, store.GetFloat("backend.rate_limit"), 1e-9)
	assert.InDelta(t, 10.0, store.GetFloat("backend.timeout_sec"), 1e-9)
	assert.Equal(t, 8, store.GetInt("search.default_limit"))
	assert.Equal(t, []string{"lake house", "loft"}, store.GetStringSlice("search.sample_queries"))
}

func TestConfigStore_TypeMismatchReturnsZero(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("backend.url", "http://x"))

	assert.Equal(t, 0, store.GetInt("backend.url"))
	assert.Zero(t, store.GetFloat("backend.url"))
	assert.Nil(t, store.GetStringSlice("backend.url"))
	assert.Equal(t, "", store.GetString("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_SaveReload_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("backend.url", "http://localhost:9000"))
	require.NoError(t, store.Set("search.default_limit", 3))
	require.NoError(t, store.Set("search.sample_queries", []string{"lake house"}))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[backend]")
	assert.Contains(t, string(raw), "[search]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", reloaded.GetString("backend.url"))
	assert.Equal(t, 3, reloaded.GetInt("search.default_limit"))
	assert.Equal(t, []string{"lake house"}, reloaded.GetStringSlice("search.sample_queries"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("backend.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("channel", make(chan int))

	assert.Error(t, err)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("web.addr", "127.0.0.1:8080"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Save())
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("web.addr", "127.0.0.1:8080"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml syntax ][}{"), 0600))

	assert.Error(t, store.Load())
	assert.Equal(t, "127.0.0.1:8080", store.GetString("web.addr"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("search.default_limit", n)
		}(i + 1)
		go func() {
			defer wg.Done()
			_ = store.GetInt("search.default_limit")
		}()
	}
	wg.Wait()
}

func TestConfigStore_Watch_ReloadsOnWrite(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	content := []byte("[search]\ndefault_limit = 12\n")
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

loop:
	for {
		select {
		case <-changed:
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(store.Path(), content, 0600))
		case <-deadline:
			t.Fatal("watch did not report a change")
		}
	}

	assert.Equal(t, 12, store.GetInt("search.default_limit"))

	cancel()
	assert.NoError(t, <-done)
}

func TestNestMap_InverseOfFlatten(t *testing.T) {
	flat := map[string]any{
		"backend.url":          "http://x",
		"search.default_limit": 5,
		"top":                  true,
	}

	nested := nestMap(flat)

	assert.Equal(t, "http://x", nested["backend"].(map[string]any)["url"])
	assert.Equal(t, flat, flattenMap(nested, ""))
}

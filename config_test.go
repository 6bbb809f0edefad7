package crawlspace_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aknapek/crawlspace"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := crawlspace.DefaultConfig("https://example.com")

	assert.Equal(t, "https://example.com", cfg.SeedURL)
	assert.Equal(t, crawlspace.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, crawlspace.DefaultMaxPages, cfg.MaxPages)
	assert.Equal(t, crawlspace.DefaultDelay, cfg.Delay)
	assert.Equal(t, crawlspace.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, crawlspace.DefaultMaxRetries, cfg.MaxRetries)
	assert.True(t, cfg.RespectRobots)
	assert.False(t, cfg.AllowExternal)
	assert.Equal(t, "json", cfg.OutputFormat)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() crawlspace.Config {
		return crawlspace.DefaultConfig("https://example.com/start")
	}

	t.Run("accepts a valid config", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects relative seed URL", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.SeedURL = "/just/a/path"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, crawlspace.EINVALID, crawlspace.ErrorCode(err))
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.SeedURL = "ftp://example.com/files"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, crawlspace.EINVALID, crawlspace.ErrorCode(err))
	})

	t.Run("rejects negative depth", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.MaxDepth = -1
		assert.Equal(t, crawlspace.EINVALID, crawlspace.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects zero max pages", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.MaxPages = 0
		assert.Equal(t, crawlspace.EINVALID, crawlspace.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects negative delay", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.Delay = -time.Second
		assert.Equal(t, crawlspace.EINVALID, crawlspace.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects zero timeout", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.Timeout = 0
		assert.Equal(t, crawlspace.EINVALID, crawlspace.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects malformed URL pattern", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.URLPatterns = []string{"[unclosed"}
		assert.Equal(t, crawlspace.EINVALID, crawlspace.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects unknown output format", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.OutputFormat = "xml"
		assert.Equal(t, crawlspace.EINVALID, crawlspace.ErrorCode(cfg.Validate()))
	})

	t.Run("allows depth zero", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.MaxDepth = 0
		assert.NoError(t, cfg.Validate())
	})
}

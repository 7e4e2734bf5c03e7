package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masego-dev/clubctl/internal/api"
	"github.com/masego-dev/clubctl/internal/testutil"
)

func TestServerConfigDefaults(t *testing.T) {
	var cfg api.ServerConfig
	require.NoError(t, env.Parse(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestServerConfigFromEnvironment(t *testing.T) {
	t.Setenv("CLUBD_HOST", "127.0.0.1")
	t.Setenv("CLUBD_PORT", "9090")
	t.Setenv("CLUBD_WRITE_TIMEOUT", "5s")

	var cfg api.ServerConfig
	require.NoError(t, env.Parse(&cfg))

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)

	server := api.NewServer(http.NotFoundHandler(), cfg, testutil.NopLogger())
	assert.Equal(t, "127.0.0.1:9090", server.Addr())
}

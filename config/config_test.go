package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "neo4j://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, 40, cfg.Explorer.OverviewNodeLimit)
	assert.Equal(t, 1, cfg.Explorer.DefaultDepth)
	assert.Equal(t, 300, cfg.Explorer.CacheTTLSeconds)
	assert.Equal(t, 900.0, cfg.Layout.CanvasWidth)
	assert.Equal(t, 600.0, cfg.Layout.CanvasHeight)
	assert.Equal(t, 60, cfg.Layout.Iterations)
	assert.Equal(t, 0.2, cfg.View.ZoomStep)
	assert.Equal(t, 4.0, cfg.View.ZoomMax)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OVERVIEW_NODE_LIMIT", "100")
	t.Setenv("DEFAULT_DEPTH", "2")
	t.Setenv("LAYOUT_REPULSION", "1800.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 100, cfg.Explorer.OverviewNodeLimit)
	assert.Equal(t, 2, cfg.Explorer.DefaultDepth)
	assert.Equal(t, 1800.5, cfg.Layout.Repulsion)
}

func TestLoadMalformedNumbersFallBack(t *testing.T) {
	t.Setenv("OVERVIEW_NODE_LIMIT", "lots")
	t.Setenv("ZOOM_STEP", "big")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Explorer.OverviewNodeLimit)
	assert.Equal(t, 0.2, cfg.View.ZoomStep)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Neo4j:    Neo4jConfig{URI: "neo4j://localhost:7687"},
			Explorer: ExplorerConfig{DefaultDepth: 1},
			View:     ViewConfig{ZoomMin: 0.2, ZoomMax: 4.0},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Server.Port = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Neo4j.URI = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Explorer.DefaultDepth = 3
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.View.ZoomMax = 0.1
	assert.Error(t, cfg.Validate())
}

package config

import (
	"testing"

	"galaxypoker-server/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	a := assert.New(t)

	unset := util.SetEnv("GP_CONFIG_FILE", "does-not-exist.yaml")
	defer unset()

	a.NoError(Load())
	cfg := Instance()

	a.Equal(25, cfg.Table.SmallBlind)
	a.Equal(50, cfg.Table.BigBlind)
	a.Equal(30, cfg.Table.TurnClock)
}

func TestLoad_envOverride(t *testing.T) {
	a := assert.New(t)

	unsetFile := util.SetEnv("GP_CONFIG_FILE", "does-not-exist.yaml")
	defer unsetFile()

	unsetSB := util.SetEnv("GP_TABLE_SMALL_BLIND", "50")
	defer unsetSB()

	unsetDSN := util.SetEnv("GP_PG_DSN", "postgres://example")
	defer unsetDSN()

	a.NoError(Load())
	cfg := Instance()

	a.Equal(50, cfg.Table.SmallBlind)
	a.Equal(100, cfg.Table.BigBlind)
	a.Equal("postgres://example", cfg.PGDSN)
}

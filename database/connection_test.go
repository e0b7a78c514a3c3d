package database

import (
	"testing"

	"github.com/mytheresa/storefront-catalog/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorFor(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:    "localhost",
		Port:    5432,
		User:    "postgres",
		Name:    "storefront",
		SSLMode: "disable",
	}

	for _, driver := range []string{config.DriverPgx, config.DriverPq} {
		t.Run(driver, func(t *testing.T) {
			cfg.Driver = driver
			dialector, err := dialectorFor(cfg)
			require.NoError(t, err)
			assert.Equal(t, "postgres", dialector.Name())
		})
	}

	cfg.Driver = "sqlite"
	_, err := dialectorFor(cfg)
	assert.ErrorContains(t, err, "unsupported database driver")
}

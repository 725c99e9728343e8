package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ListSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(&MigrateCommand{})
	r.Register(&CheckEnvCommand{})
	r.Register(&HealthCheckCommand{})

	names := make([]string, 0, 3)
	for _, c := range r.List() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"check-env", "health-check", "migrate"}, names)

	_, ok := r.Get("wait-for-db")
	assert.False(t, ok)
}

func TestValidateCatalogCommand(t *testing.T) {
	cmd := &ValidateCatalogCommand{}
	require.NoError(t, cmd.Run(nil))
	assert.Error(t, cmd.Run([]string{"/nope/catalog.json"}))
}

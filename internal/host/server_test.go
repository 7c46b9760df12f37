package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpbridge/internal/bridge"
	"mcpbridge/internal/config"
)

func TestNew_RegistrySatisfiesToolRegistry(t *testing.T) {
	s := New(config.ServerConfig{Transport: config.TransportStdio}, "mcpbridge", "test")

	require.NotNil(t, s.Registry())
	var _ bridge.ToolRegistry = s.Registry()
}

func TestRunShutdownHooks_OrderAndOnce(t *testing.T) {
	s := New(config.ServerConfig{}, "mcpbridge", "test")

	var order []int
	s.OnShutdown(func() { order = append(order, 1) })
	s.OnShutdown(func() { order = append(order, 2) })

	s.runShutdownHooks()
	assert.Equal(t, []int{1, 2}, order)

	// Hooks are consumed; a second run must not re-fire them
	s.runShutdownHooks()
	assert.Equal(t, []int{1, 2}, order)
}

func TestRunShutdownHooks_NoHooksIsNoOp(t *testing.T) {
	s := New(config.ServerConfig{}, "mcpbridge", "test")
	assert.NotPanics(t, func() { s.runShutdownHooks() })
}

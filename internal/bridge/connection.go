package bridge

import (
	"context"
	"sync"
	"time"

	"mcpbridge/internal/config"
	"mcpbridge/pkg/logging"
)

const pingTimeout = 5 * time.Second

// ConnectionManager owns the single client connection to the provider
// process. The connection is created lazily on first use and re-created
// transparently after the provider dies. Concurrent callers are serialized
// behind the mutex, so at most one connect attempt is in flight and every
// waiter shares its outcome.
type ConnectionManager struct {
	launch     config.ProviderConfig
	newClient  ClientFactory
	mu         sync.Mutex
	client     RemoteToolClient
	generation int
}

// NewConnectionManager creates a manager for the given launch configuration.
// No process is spawned until EnsureConnected is called.
func NewConnectionManager(launch config.ProviderConfig, factory ClientFactory) *ConnectionManager {
	return &ConnectionManager{
		launch:    launch,
		newClient: factory,
	}
}

// EnsureConnected returns the live client, connecting first if necessary.
// An existing client is probed with a ping; a dead one is discarded and
// replaced within the same call, so a caller observing the provider's death
// pays exactly one reconnect attempt. Connect failures return a
// *ConnectionError; no retry happens here, the next call tries again.
func (m *ConnectionManager) EnsureConnected(ctx context.Context) (RemoteToolClient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := m.client.Ping(pingCtx)
		cancel()
		if err == nil {
			return m.client, nil
		}
		logging.Warn("Connection", "Provider connection lost (%v), reconnecting", err)
		if cerr := m.client.Close(); cerr != nil {
			logging.Debug("Connection", "Error closing dead client: %v", cerr)
		}
		m.client = nil
	}

	client, err := m.newClient(ctx, m.launch)
	if err != nil {
		return nil, &ConnectionError{Launch: m.launch, Err: err}
	}

	m.client = client
	m.generation++
	logging.Info("Connection", "Connected to provider %q (connection #%d)", m.launch.Command, m.generation)
	return client, nil
}

// Close shuts down the current connection, if any, and resets the manager to
// disconnected. Safe to call when no connection was ever established, and
// safe to call more than once.
func (m *ConnectionManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}

	err := m.client.Close()
	m.client = nil
	if err != nil {
		logging.Warn("Connection", "Error closing provider connection: %v", err)
	}
	return err
}

// Generation returns how many connections have been established so far.
// Useful for tests and diagnostics.
func (m *ConnectionManager) Generation() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

package bridge

import (
	"fmt"
	"strings"

	"mcpbridge/internal/config"
)

// ConnectionError reports a failed spawn or handshake with the provider
// process. It carries the launch configuration so the log line identifies
// which command could not be started.
type ConnectionError struct {
	Launch config.ProviderConfig
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connecting to provider %q: %v",
		strings.TrimSpace(e.Launch.Command+" "+strings.Join(e.Launch.Args, " ")), e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// DiscoveryError reports a failed catalog listing after a successful connect.
type DiscoveryError struct {
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("listing provider tools: %v", e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// InvocationError reports the failure of a single remote operation call. It
// is local to that call and never tears down the shared connection.
type InvocationError struct {
	Tool string
	Err  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("calling provider tool %q: %v", e.Tool, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// Package timeouts defines shared timeout constants used by the command-line
// tools.
package timeouts

import "time"

// TelemetryShutdown limits how long a tool waits for pending spans to be
// exported before it exits.
const TelemetryShutdown = 5 * time.Second

// Package lifecycle holds process lifecycle constants shared by the
// delivery servers and infrastructure clients.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings and graceful shutdown.
const DefaultTimeout = 30 * time.Second

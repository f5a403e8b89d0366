// Package timeouts defines shared timeout constants used by the dossier
// command.
package timeouts

import "time"

// TelemetryShutdown limits how long pending spans may take to export when a
// command exits.
const TelemetryShutdown = 5 * time.Second

// IndexProfile caps reading and indexing one profile, including the linked
// profiles it pulls in.
const IndexProfile = 30 * time.Second

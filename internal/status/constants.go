// internal/status/constants.go
package status

// Capture state labels as reported to consumers.
// These values are part of the /status contract and MUST NOT change.

// ---- CAPTURE STATES ----

// StateIdle: no motion counted, no session.
const StateIdle = "idle"

// StateBuffering: motion counted, below the confirmation threshold.
const StateBuffering = "buffering"

// StateOpen: a session is accumulating motion frames.
const StateOpen = "open"

// StateStopped: the capture loop has exited.
const StateStopped = "stopped"

// Package realtime implements the websocket hub that pushes notifications
// to connected users. Each user may hold several connections; delivery is
// best effort and slow readers are disconnected rather than buffered.
package realtime

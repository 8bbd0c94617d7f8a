// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - live connections, identities and rooms
//   - requests by type and result code
//   - broadcast frames delivered and dropped
package metrics

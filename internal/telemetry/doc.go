// Package telemetry holds the service's observability plumbing.
//
//   - logging.go: structured logging through log/slog
//   - metrics.go: Prometheus collectors exported on /metrics
package telemetry

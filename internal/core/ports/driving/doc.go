// Package driving defines the inbound ports: the service interfaces
// the CLI and TUI adapters drive the core through.
package driving

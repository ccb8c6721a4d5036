// Package driven defines the outbound ports: interfaces the core
// depends on and adapters implement (storage, codec, file loaders,
// external commands).
package driven

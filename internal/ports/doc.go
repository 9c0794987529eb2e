// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by handlers.
// Backend ports (TxStore, CacheBackend, AuditStore, repositories) are
// implemented by outbound adapters and called by the application layer and the
// mutation pipeline.
package ports

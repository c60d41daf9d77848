// Package core contains the shared value types exchanged between the
// orchestration engine, the session stores and the transport layers:
// per-request state, plans and step results, the durable session record
// with its reconciliation operations, and the typed progress events
// streamed to clients.
package core

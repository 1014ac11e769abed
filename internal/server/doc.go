// Package server implements the chat relay core: the hub event loop
// that owns the member registry, the action dispatcher, the broadcast
// fanout engine, and the WebSocket transport glue around them.
//
// The implementation is organized into specialized files for
// configuration, the hub, dispatch, actions, clients, routing, and
// HTTP handlers to keep the codebase maintainable and testable.
package server

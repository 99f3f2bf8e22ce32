// Package dispatch implements the request routing and dispatch engine.
//
// A [Dispatcher] owns an immutable-after-startup route table (method →
// ordered routes), resolves each inbound request to a handler plus
// positional path parameters, runs the global and route-specific
// middleware chains, and invokes the handler inside a single top-level
// error boundary. Handlers and middleware are registered under string
// identifiers in startup-populated registries; a failed lookup is an
// explicit error, never a silent no-op.
//
// Route matching is deliberately simple: patterns are tried in
// registration order and the first hit wins, and registering the same
// (method, pattern) pair twice silently replaces the earlier entry.
// There is no specificity sort.
package dispatch

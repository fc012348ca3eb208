// Package bootstrap runs a service through its lifecycle: validate config,
// start components in order, run configure callbacks and hooks, wait for
// SIGINT or SIGTERM, then stop everything in reverse within a graceful
// timeout.
//
// Wiring is explicit. The composition root registers components and
// builds handlers in OnConfigure; there is no container or reflection.
package bootstrap

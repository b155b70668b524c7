// Package server wires and runs the application's transport server.
//
// It provides orchestration for the HTTP server lifecycle, including
// startup, signal handling, graceful shutdown, and stopping the realtime
// liveness monitor alongside the transport.
package server

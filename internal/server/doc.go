// Package server wires and runs the application's transport servers.
//
// It binds the HTTP API and the optional gRPC health endpoint, serves them
// until the caller's context is cancelled and then shuts both down within
// the configured timeout.
package server

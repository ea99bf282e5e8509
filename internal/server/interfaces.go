package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// RunServer serves requests until ctx is cancelled or a transport fails,
	// then shuts every transport down gracefully.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the servers. Connections still open when ctx
	// expires are closed forcibly.
	Shutdown(ctx context.Context) error
}

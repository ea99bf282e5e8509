// Package http implements the REST transport of go-disk-next.
//
// It exposes route wiring, request handlers, and middleware used by the
// API. Cross-cutting concerns such as bearer authentication, admin checks,
// request tracing, access logging, metrics and response compression are
// handled in this package before requests are delegated to the service
// layer.
package http

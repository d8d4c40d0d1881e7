// Package server implements the eleven HTTP operations of the registry
// surface: manifest and blob push/pull, the chunked-upload state machine,
// and the per-repository server-sent event stream. Routing, header parsing
// and path-parameter extraction are delegated to gin, the teacher's own
// HTTP framework of choice, per spec.md's "external collaborators" scoping.
package server

import (
	"github.com/wuxler/ruasec/pkg/registry/events"
	"github.com/wuxler/ruasec/pkg/registry/store"
)

// Server holds the shared state backing every handler: the three artifact
// containers and the event fabric.
type Server struct {
	store *store.Store
	hub   *events.Hub
	opts  Options
}

// New builds a Server over a fresh, empty in-memory store and event hub.
func New(opts Options) *Server {
	opts = opts.withDefaults()
	return &Server{
		store: store.New(),
		hub:   events.NewHub(opts.EventBufferSize),
		opts:  opts,
	}
}

package server

import (
	"io"

	"github.com/gin-gonic/gin"
)

// subscribeEvents streams the repository's event topic as Server-Sent
// Events until the client disconnects. It never closes on its own: per
// spec, an event topic is created lazily on first subscribe and lives for
// the lifetime of the process.
func (s *Server) subscribeEvents(c *gin.Context) {
	ns := c.Param("ns")
	sub, detach := s.hub.Subscribe(ns)
	defer detach()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent("message", event)
			return true
		case <-clientGone:
			return false
		}
	})
}

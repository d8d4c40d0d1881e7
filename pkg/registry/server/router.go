package server

import (
	"github.com/gin-gonic/gin"
)

// Router builds the gin.Engine exposing the registry's HTTP surface. It can
// be mounted standalone (as in tests) or have its routes merged into a
// larger application router the way [github.com/wuxler/ruasec/pkg/commands/server]
// mounts /ping alongside it.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	s.Mount(r)
	return r
}

// Mount registers the registry's routes onto an existing gin router group,
// so callers that already own an *gin.Engine (such as the server command)
// can add the registry surface without standing up a second HTTP server.
func (s *Server) Mount(r gin.IRouter) {
	r.GET("/v2/", s.ping)

	r.GET("/v2/:name/manifests/:reference", s.getManifest)
	r.HEAD("/v2/:name/manifests/:reference", s.headManifest)
	r.PUT("/v2/:name/manifests/:reference", s.putManifest)

	r.GET("/v2/:name/blobs/:digest", s.getBlob)
	r.HEAD("/v2/:name/blobs/:digest", s.headBlob)

	r.POST("/v2/:name/blobs/uploads", s.startUpload)
	r.PATCH("/v2/:name/blobs/uploads/:uuid", s.patchUploadChunk)
	r.PUT("/v2/:name/blobs/uploads/:uuid", s.putUploadComplete)

	r.GET("/events/:ns", s.subscribeEvents)
}

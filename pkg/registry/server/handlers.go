package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	registrydigest "github.com/wuxler/ruasec/pkg/registry/digest"
	"github.com/wuxler/ruasec/pkg/registry/events"
	"github.com/wuxler/ruasec/pkg/registry/manifest"
	"github.com/wuxler/ruasec/pkg/registry/store"
	"github.com/wuxler/ruasec/pkg/util/xhttp"
	"github.com/wuxler/ruasec/pkg/xlog"
)

// ping answers the spec-support probe GET /v2/.
func (s *Server) ping(c *gin.Context) {
	c.Status(http.StatusOK)
}

// --- manifests ---

func (s *Server) getManifest(c *gin.Context) {
	name := c.Param("name")
	reference := c.Param("reference")

	record, ok := s.store.Manifests.Get(name, reference)
	if !ok {
		s.hub.Publish(name, events.Event{
			DataType: events.DataTypeManifest, Method: http.MethodGet,
			Status: http.StatusNotFound, Repo: name, Identifier: reference,
		})
		c.Status(http.StatusNotFound)
		return
	}
	s.hub.Publish(name, events.Event{
		DataType: events.DataTypeManifest, Method: http.MethodGet,
		Status: http.StatusOK, Repo: name, Identifier: reference,
	})
	c.Data(http.StatusOK, record.ContentType, record.Content)
}

func (s *Server) headManifest(c *gin.Context) {
	name := c.Param("name")
	reference := c.Param("reference")

	status := http.StatusOK
	if !s.store.Manifests.Exists(name, reference) {
		status = http.StatusNotFound
	}
	s.hub.Publish(name, events.Event{
		DataType: events.DataTypeManifest, Method: http.MethodHead,
		Status: status, Repo: name, Identifier: reference,
	})
	c.Status(status)
}

func (s *Server) putManifest(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")
	reference := c.Param("reference")
	contentType := c.GetHeader("Content-Type")

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, s.opts.MaxManifestBytes+1))
	if err != nil {
		xlog.C(ctx).Errorf("read manifest body for %s/%s: %v", name, reference, err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if int64(len(body)) > s.opts.MaxManifestBytes {
		xlog.C(ctx).Errorf("manifest body for %s/%s exceeds %d bytes", name, reference, s.opts.MaxManifestBytes)
		c.Status(http.StatusInternalServerError)
		return
	}

	digest := registrydigest.FromBytes(body)
	record := store.ManifestRecord{ContentType: contentType, Content: body}

	// Decode dependencies before storing anything: a decode failure aborts
	// the response and leaves the manifest store untouched.
	deps, err := manifest.ParseDependencies(contentType, body)
	if err != nil {
		xlog.C(ctx).Errorf("parse manifest dependencies for %s/%s: %v", name, reference, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	// Store under both the human reference and the computed digest.
	s.store.Manifests.Put(name, reference, record)
	s.store.Manifests.Put(name, digest.String(), record)

	refs := make([]events.Ref, 0, len(deps))
	for _, dep := range deps {
		kind := events.DataTypeBlob
		if dep.Kind == manifest.DependencyManifest {
			kind = events.DataTypeManifest
		}
		refs = append(refs, events.Ref{DataType: kind, Repo: name, Identifier: dep.Digest})
	}

	s.hub.Publish(name, events.Event{
		DataType: events.DataTypeManifest, Method: http.MethodPut,
		Status: http.StatusOK, Repo: name, Identifier: reference, Refs: refs,
	})

	c.Header("Docker-Content-Digest", digest.String())
	c.Status(http.StatusCreated)
}

// --- blobs ---

func (s *Server) getBlob(c *gin.Context) {
	name := c.Param("name")
	digest := c.Param("digest")

	content, ok := s.store.Blobs.Get(digest)
	if !ok {
		s.hub.Publish(name, events.Event{
			DataType: events.DataTypeBlob, Method: http.MethodGet,
			Status: http.StatusNotFound, Repo: name, Identifier: digest,
		})
		c.Status(http.StatusNotFound)
		return
	}
	s.hub.Publish(name, events.Event{
		DataType: events.DataTypeBlob, Method: http.MethodGet,
		Status: http.StatusOK, Repo: name, Identifier: digest,
	})
	c.Header("Docker-Content-Digest", digest)
	c.Data(http.StatusOK, "application/octet-stream", content)
}

func (s *Server) headBlob(c *gin.Context) {
	name := c.Param("name")
	digest := c.Param("digest")

	status := http.StatusOK
	if !s.store.Blobs.Exists(digest) {
		status = http.StatusNotFound
	}
	s.hub.Publish(name, events.Event{
		DataType: events.DataTypeBlob, Method: http.MethodHead,
		Status: status, Repo: name, Identifier: digest,
	})
	c.Status(status)
}

// --- uploads ---

func (s *Server) startUpload(c *gin.Context) {
	name := c.Param("name")
	id := uuid.NewString()
	c.Header("Location", uploadLocation(name, id))
	c.Status(http.StatusAccepted)
}

func (s *Server) patchUploadChunk(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")
	id := c.Param("uuid")
	contentRange := c.GetHeader("Content-Range")

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, s.opts.MaxUploadChunkBytes+1))
	if err != nil {
		xlog.C(ctx).Errorf("read upload chunk for %s/%s: %v", name, id, err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if int64(len(body)) > s.opts.MaxUploadChunkBytes {
		xlog.C(ctx).Errorf("upload chunk for %s/%s exceeds %d bytes", name, id, s.opts.MaxUploadChunkBytes)
		c.Status(http.StatusInternalServerError)
		return
	}

	if contentRange == "" {
		if _, exists := s.store.Uploads.Len(id); exists {
			// Partial + no range: start is unknown, prior writes must
			// continue with explicit ranges.
			c.Status(http.StatusRequestedRangeNotSatisfiable)
			return
		}
		s.store.Uploads.Create(id, body)
	} else {
		start, _, ok := xhttp.ParseRange(contentRange)
		if !ok {
			c.Status(http.StatusRequestedRangeNotSatisfiable)
			return
		}
		if result := s.store.Uploads.Append(id, int(start), body); result == store.RangeNotSatisfiable {
			c.Status(http.StatusRequestedRangeNotSatisfiable)
			return
		}
	}

	n, _ := s.store.Uploads.Len(id)
	c.Header("Location", uploadLocation(name, id))
	c.Header("Range", xhttp.RangeString(0, int64(n)))
	c.Status(http.StatusAccepted)
}

func (s *Server) putUploadComplete(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")
	id := c.Param("uuid")
	digest := c.Query("digest")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		xlog.C(ctx).Errorf("read final chunk for %s/%s: %v", name, id, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	if existing, ok := s.store.Uploads.Take(id); ok {
		content := make([]byte, 0, len(existing)+len(body))
		content = append(content, existing...)
		content = append(content, body...)
		s.store.Blobs.Put(digest, content)
	} else {
		// monolithic push path: no prior chunked upload exists for this id.
		s.store.Blobs.Put(digest, body)
	}

	// The Ref to the Upload is emitted even on the monolithic path, where it
	// may dangle: this preserves the upstream's observable (if odd)
	// behavior rather than silently fixing it, per spec.
	refs := []events.Ref{{DataType: events.DataTypeUpload, Repo: name, Identifier: id}}
	s.hub.Publish(name, events.Event{
		DataType: events.DataTypeBlob, Method: http.MethodPut,
		Status: http.StatusCreated, Repo: name, Identifier: digest, Refs: refs,
	})

	c.Header("Docker-Content-Digest", digest)
	c.Status(http.StatusCreated)
}

func uploadLocation(name, id string) string {
	return fmt.Sprintf("/v2/%s/blobs/uploads/%s", name, id)
}

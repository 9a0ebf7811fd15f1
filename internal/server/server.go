// Package server Agora
//
// The Agora is a posts service which keeps post aggregates (replies, likes, views) and their moderation state.
//
//     Schemes: https
//     BasePath: /v1
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
// swagger:meta
package server

import (
	"context"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	mm "github.com/agora-forum/agora/internal/middleware"
	"github.com/agora-forum/agora/internal/service"
)

//go:generate swagger generate spec -t swagger -m -c . -o ../../static/swagger.json

var log = logrus.WithField("layer", "server").WithField("package", "server")

const maxBodySize = 64 * 1024

// Pinger is a dependency checked by health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options ...
type Options struct {
	Timeout   time.Duration
	RateLimit rate.Limit
	RateBurst int
	// Checks are dependencies pinged by health endpoint, the key is a dependency name.
	Checks map[string]Pinger
}

type server struct {
	s service.Service
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s service.Service, r chi.Router, opts Options) {
	r.Use(
		middleware.RequestID,
		mm.Logger,
		middleware.StripSlashes,
		cors.AllowAll().Handler,
		middleware.Recoverer,
	)

	r.Get("/health", health(opts.Checks))
	r.Handle("/metrics", promhttp.Handler())

	srv := server{
		s: s,
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(
			mm.RateLimit(opts.RateLimit, opts.RateBurst),
			middleware.Timeout(opts.Timeout),
			mm.BodyLimiter(maxBodySize),
			mm.Requester,
		)

		r.Get("/posts", srv.listPosts)
		r.Post("/posts", srv.createPost)
		r.Get("/posts/accessibility/{accessibility}", srv.listPostsByAccessibility)
		r.Get("/posts/{postID}", srv.getPost)
		r.Put("/posts/{postID}", srv.updatePost)
		r.Delete("/posts/{postID}", srv.deletePost)
		r.Patch("/posts/{postID}/accessibility", srv.updateAccessibility)

		r.Post("/posts/{postID}/replies", srv.addReply)
		r.Put("/posts/{postID}/replies/{replyID}", srv.updateReply)
		r.Delete("/posts/{postID}/replies/{replyID}", srv.deleteReply)
		r.Post("/posts/{postID}/replies/{replyID}/sub-replies", srv.addSubReply)
		r.Put("/posts/{postID}/replies/{replyID}/sub-replies/{subReplyID}", srv.updateSubReply)
		r.Delete("/posts/{postID}/replies/{replyID}/sub-replies/{subReplyID}", srv.deleteSubReply)

		r.Post("/posts/{postID}/likes", srv.likePost)
		r.Delete("/posts/{postID}/likes", srv.unlikePost)
		r.Post("/posts/{postID}/views", srv.incrementViews)

		r.Get("/users/{userID}/posts", srv.listUserPosts)
		r.Get("/users/{userID}/posts/top", srv.listTopUserPosts)
	})
}

package server

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/agora-forum/agora/internal/entities"
	"github.com/agora-forum/agora/internal/service"
)

func (s server) listPosts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts Posts ListPosts
	//
	// Return all posts with their authors.
	//
	// ---
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     description: Posts
	//     schema:
	//       type: array
	//       items:
	//         "$ref": "#/definitions/Post"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Response"

	pp, err := s.s.ListPosts(r.Context())
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPosts(pp))
}

func (s server) listPostsByAccessibility(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts/accessibility/{accessibility} Posts ListPostsByAccessibility
	//
	// Return posts with accessibility.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: accessibility
	//   in: path
	//   required: true
	//   type: string
	//   enum: [UNPUBLISHED, PUBLISHED, HIDDEN, BANNED, DELETED]
	// responses:
	//   '200':
	//     description: Posts
	//     schema:
	//       type: array
	//       items:
	//         "$ref": "#/definitions/Post"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Response"

	a, err := entities.ParseAccessibility(chi.URLParam(r, "accessibility"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pp, err := s.s.ListPostsByAccessibility(r.Context(), a)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPosts(pp))
}

func (s server) getPost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts/{postID} Posts GetPost
	//
	// Return post by id.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: postID
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Response"

	p, err := s.s.GetPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(&p.Post, p.Author))
}

func (s server) createPost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts Posts CreatePost
	//
	// Create a post owned by requester.
	//
	// ---
	// consumes:
	// - application/json
	// produces:
	// - application/json
	// parameters:
	// - name: X-User-Id
	//   in: header
	//   required: true
	//   type: integer
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/CreatePostRequest"
	// responses:
	//   '201':
	//     description: Created post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '403':
	//     description: requester is not active
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '503':
	//     description: users service is unavailable
	//     schema:
	//       "$ref": "#/definitions/Response"

	user, ok := requester(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.s.CreatePost(r.Context(), user, service.CreatePostParams{
		Title:         req.Title,
		Content:       req.Content,
		Accessibility: entities.Accessibility(req.Accessibility),
		Images:        req.Images,
		Attachments:   req.Attachments,
	})
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusCreated, toAPIPost(p, nil))
}

func (s server) updatePost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation PUT /posts/{postID} Posts UpdatePost
	//
	// Replace post's title and content. Only owner or admin may update post.
	//
	// ---
	// consumes:
	// - application/json
	// produces:
	// - application/json
	// parameters:
	// - name: X-User-Id
	//   in: header
	//   required: true
	//   type: integer
	// - name: postID
	//   in: path
	//   required: true
	//   type: string
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/UpdatePostRequest"
	// responses:
	//   '200':
	//     description: Updated post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '403':
	//     description: requester is neither owner nor admin
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Response"

	user, ok := requester(w, r)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.s.UpdatePost(r.Context(), user, chi.URLParam(r, "postID"), service.UpdatePostParams{
		Title:      req.Title,
		Content:    req.Content,
		IsArchived: req.IsArchived,
	})
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p, nil))
}

func (s server) deletePost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation DELETE /posts/{postID} Posts DeletePost
	//
	// Mark post as deleted. Only owner or admin may delete post.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: X-User-Id
	//   in: header
	//   required: true
	//   type: integer
	// - name: postID
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Deleted post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '403':
	//     description: requester is neither owner nor admin
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Response"

	user, ok := requester(w, r)
	if !ok {
		return
	}

	p, err := s.s.DeletePost(r.Context(), user, chi.URLParam(r, "postID"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p, nil))
}

func (s server) updateAccessibility(w http.ResponseWriter, r *http.Request) {
	// swagger:operation PATCH /posts/{postID}/accessibility Posts UpdateAccessibility
	//
	// Move post to another accessibility. Allowed targets depend on requester's role.
	//
	// ---
	// consumes:
	// - application/json
	// produces:
	// - application/json
	// parameters:
	// - name: X-User-Id
	//   in: header
	//   required: true
	//   type: integer
	// - name: postID
	//   in: path
	//   required: true
	//   type: string
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/UpdateAccessibilityRequest"
	// responses:
	//   '200':
	//     description: Updated post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '403':
	//     description: requester is neither owner nor admin
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '409':
	//     description: transition is not allowed
	//     schema:
	//       "$ref": "#/definitions/Response"

	user, ok := requester(w, r)
	if !ok {
		return
	}

	var req UpdateAccessibilityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := entities.ParseAccessibility(req.Accessibility)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.s.UpdateAccessibility(r.Context(), user, chi.URLParam(r, "postID"), a)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p, nil))
}

func (s server) likePost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts/{postID}/likes Engagement LikePost
	//
	// Like post on behalf of requester.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: X-User-Id
	//   in: header
	//   required: true
	//   type: integer
	// - name: postID
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Liked post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '409':
	//     description: post is already liked
	//     schema:
	//       "$ref": "#/definitions/Response"

	user, ok := requester(w, r)
	if !ok {
		return
	}

	p, err := s.s.LikePost(r.Context(), user, chi.URLParam(r, "postID"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p, nil))
}

func (s server) unlikePost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation DELETE /posts/{postID}/likes Engagement UnlikePost
	//
	// Remove requester's like.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: X-User-Id
	//   in: header
	//   required: true
	//   type: integer
	// - name: postID
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Unliked post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '409':
	//     description: post is not liked
	//     schema:
	//       "$ref": "#/definitions/Response"

	user, ok := requester(w, r)
	if !ok {
		return
	}

	p, err := s.s.UnlikePost(r.Context(), user, chi.URLParam(r, "postID"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p, nil))
}

func (s server) incrementViews(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts/{postID}/views Engagement IncrementViews
	//
	// Count a view of the post.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: postID
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Viewed post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Response"

	p, err := s.s.IncrementViews(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p, nil))
}

func (s server) listUserPosts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /users/{userID}/posts Posts ListUserPosts
	//
	// Return posts owned by user.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: userID
	//   in: path
	//   required: true
	//   type: integer
	// responses:
	//   '200':
	//     description: Posts
	//     schema:
	//       type: array
	//       items:
	//         "$ref": "#/definitions/Post"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Response"

	id, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pp, err := s.s.ListPostsByUser(r.Context(), id)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPosts(pp))
}

func (s server) listTopUserPosts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /users/{userID}/posts/top Posts ListTopUserPosts
	//
	// Return up to 3 user's posts with the most replies.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: userID
	//   in: path
	//   required: true
	//   type: integer
	// responses:
	//   '200':
	//     description: Posts
	//     schema:
	//       type: array
	//       items:
	//         "$ref": "#/definitions/Post"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Response"

	id, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pp, err := s.s.ListTopPostsByUser(r.Context(), id)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPosts(pp))
}

package server

import (
	"net/http"

	"github.com/go-chi/chi"
)

func (s server) addReply(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts/{postID}/replies Replies AddReply
	//
	// Reply to post.
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
	//     "$ref": "#/definitions/ReplyRequest"
	// responses:
	//   '201':
	//     description: Post with the new reply
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '403':
	//     description: requester is not active
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

	var req ReplyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.s.AddReply(r.Context(), user, chi.URLParam(r, "postID"), req.Comment)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusCreated, toAPIPost(p, nil))
}

func (s server) updateReply(w http.ResponseWriter, r *http.Request) {
	// swagger:operation PUT /posts/{postID}/replies/{replyID} Replies UpdateReply
	//
	// Replace reply's comment.
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
	// - name: replyID
	//   in: path
	//   required: true
	//   type: string
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/ReplyRequest"
	// responses:
	//   '200':
	//     description: Updated post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '404':
	//     description: post or reply not found
	//     schema:
	//       "$ref": "#/definitions/Response"

	user, ok := requester(w, r)
	if !ok {
		return
	}

	var req ReplyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.s.UpdateReply(r.Context(), user, chi.URLParam(r, "postID"), chi.URLParam(r, "replyID"), req.Comment)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p, nil))
}

func (s server) deleteReply(w http.ResponseWriter, r *http.Request) {
	// swagger:operation DELETE /posts/{postID}/replies/{replyID} Replies DeleteReply
	//
	// Soft delete reply. Only post's owner or admin may delete replies.
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
	// - name: replyID
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Updated post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '403':
	//     description: requester is neither owner nor admin
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '404':
	//     description: post or reply not found
	//     schema:
	//       "$ref": "#/definitions/Response"

	user, ok := requester(w, r)
	if !ok {
		return
	}

	p, err := s.s.SoftDeleteReply(r.Context(), user, chi.URLParam(r, "postID"), chi.URLParam(r, "replyID"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p, nil))
}

func (s server) addSubReply(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts/{postID}/replies/{replyID}/sub-replies Replies AddSubReply
	//
	// Reply to reply.
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
	// - name: replyID
	//   in: path
	//   required: true
	//   type: string
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/ReplyRequest"
	// responses:
	//   '201':
	//     description: Post with the new sub-reply
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '403':
	//     description: requester is not active
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '404':
	//     description: post or reply not found
	//     schema:
	//       "$ref": "#/definitions/Response"

	user, ok := requester(w, r)
	if !ok {
		return
	}

	var req ReplyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.s.AddSubReply(r.Context(), user, chi.URLParam(r, "postID"), chi.URLParam(r, "replyID"), req.Comment)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusCreated, toAPIPost(p, nil))
}

func (s server) updateSubReply(w http.ResponseWriter, r *http.Request) {
	// swagger:operation PUT /posts/{postID}/replies/{replyID}/sub-replies/{subReplyID} Replies UpdateSubReply
	//
	// Replace sub-reply's comment.
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
	// - name: replyID
	//   in: path
	//   required: true
	//   type: string
	// - name: subReplyID
	//   in: path
	//   required: true
	//   type: string
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/ReplyRequest"
	// responses:
	//   '200':
	//     description: Updated post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '404':
	//     description: post, reply or sub-reply not found
	//     schema:
	//       "$ref": "#/definitions/Response"

	user, ok := requester(w, r)
	if !ok {
		return
	}

	var req ReplyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.s.UpdateSubReply(r.Context(), user,
		chi.URLParam(r, "postID"), chi.URLParam(r, "replyID"), chi.URLParam(r, "subReplyID"), req.Comment)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p, nil))
}

func (s server) deleteSubReply(w http.ResponseWriter, r *http.Request) {
	// swagger:operation DELETE /posts/{postID}/replies/{replyID}/sub-replies/{subReplyID} Replies DeleteSubReply
	//
	// Soft delete sub-reply. Only post's owner or admin may delete sub-replies.
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
	// - name: replyID
	//   in: path
	//   required: true
	//   type: string
	// - name: subReplyID
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Updated post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '403':
	//     description: requester is neither owner nor admin
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '404':
	//     description: post, reply or sub-reply not found
	//     schema:
	//       "$ref": "#/definitions/Response"

	user, ok := requester(w, r)
	if !ok {
		return
	}

	p, err := s.s.SoftDeleteSubReply(r.Context(), user,
		chi.URLParam(r, "postID"), chi.URLParam(r, "replyID"), chi.URLParam(r, "subReplyID"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p, nil))
}

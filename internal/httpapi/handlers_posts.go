package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/auth"
	"inkwell/internal/posts"
)

type createPostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

type updatePostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

type postResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPostResponse(p *posts.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	list, err := s.posts.ListPublished(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	out := make([]postResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPostResponse(p))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toPostResponse(post))
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if err := validateCreatePost(req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	post, err := s.posts.Create(r.Context(), claims.UserID(), posts.CreateInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toPostResponse(post))
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req updatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if err := validateUpdatePost(req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	post, err := s.posts.Update(r.Context(), chi.URLParam(r, "id"), claims.UserID(), auth.Role(claims.Role), posts.UpdateInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toPostResponse(post))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	if err := s.posts.Delete(r.Context(), chi.URLParam(r, "id"), claims.UserID(), auth.Role(claims.Role)); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

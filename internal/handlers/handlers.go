package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avaldes/blogboard/internal/model"
	"github.com/avaldes/blogboard/internal/pagination"
	"github.com/avaldes/blogboard/internal/session"
)

// loginHandler checks credentials against the user directory and saves the
// matching user as the session's current-user record
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := s.directory.FindCredential(ctx, req.Username, req.Password)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error checking credentials: %v", err), http.StatusBadGateway)
		return
	}

	if user == nil {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	if err := s.sessions.Save(*user); err != nil {
		http.Error(w, fmt.Sprintf("Error saving session: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// sessionHandler returns the saved current-user record
func (s *Server) sessionHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.sessions.Load()
	if err != nil {
		if err == session.ErrNoSession {
			http.Error(w, "No active session", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Error loading session: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// logoutHandler clears the saved session
func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Clear(); err != nil {
		http.Error(w, fmt.Sprintf("Error clearing session: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listBlogsHandler returns one page of the blog catalog
func (s *Server) listBlogsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := atoiOrDefault(r.URL.Query().Get("page"), 1)
	size := atoiOrDefault(r.URL.Query().Get("per_page"), s.config.PageSize)

	all, err := s.catalog.ListAll(ctx)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error listing blogs: %v", err), http.StatusBadGateway)
		return
	}

	pageItems, err := pagination.Paginate(all, page, size)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid page size: %v", err), http.StatusBadRequest)
		return
	}

	pages, _ := pagination.PageCount(len(all), size)

	response := map[string]interface{}{
		"blogs":    pageItems,
		"page":     page,
		"per_page": size,
		"total":    len(all),
		"pages":    pages,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// atoiOrDefault parses a query parameter, falling back on empty or invalid input
func atoiOrDefault(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return defaultValue
}

// blogDetailHandler returns a single blog by id
func (s *Server) blogDetailHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	blog, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error fetching blog: %v", err), http.StatusBadGateway)
		return
	}

	if blog == nil {
		http.Error(w, "Blog not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(blog)
}

// commentView is a comment joined with its author's username for display
type commentView struct {
	model.Comment
	Username string `json:"username"`
}

// listCommentsHandler returns a blog's comments with usernames resolved
func (s *Server) listCommentsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	thread, err := s.comments.Open(ctx, id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading comments: %v", err), http.StatusBadGateway)
		return
	}

	list := thread.Comments()
	views := make([]commentView, 0, len(list))
	for _, c := range list {
		views = append(views, commentView{Comment: c, Username: thread.UsernameFor(c.UserID)})
	}

	response := map[string]interface{}{
		"comments": views,
		"count":    len(views),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// createCommentHandler submits a new comment on a blog. A submission that
// the comment store rejects (blank text, no resolvable identity) is answered
// with 204 and no body, mirroring the store's silent no-op.
func (s *Server) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var req struct {
		Content string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	thread, err := s.comments.Open(ctx, id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading comments: %v", err), http.StatusBadGateway)
		return
	}

	comment, err := thread.Submit(ctx, req.Content)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error submitting comment: %v", err), http.StatusBadGateway)
		return
	}

	if comment == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(commentView{Comment: *comment, Username: thread.UsernameFor(comment.UserID)})
}

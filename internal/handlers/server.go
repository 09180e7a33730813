package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/avaldes/blogboard/internal/blogs"
	"github.com/avaldes/blogboard/internal/comments"
	"github.com/avaldes/blogboard/internal/config"
	"github.com/avaldes/blogboard/internal/session"
	"github.com/avaldes/blogboard/internal/store"
	"github.com/avaldes/blogboard/internal/users"
)

// Server holds the HTTP gateway and its dependencies
type Server struct {
	config    *config.Config
	client    *store.Client
	directory *users.Directory
	catalog   *blogs.Catalog
	comments  *comments.Store
	sessions  *session.Store
}

// NewServer creates a new HTTP gateway over the remote store
func NewServer(cfg *config.Config) *Server {
	client := store.NewClient(cfg.StoreBaseURL)
	directory := users.NewDirectory(client)

	return &Server{
		config:    cfg,
		client:    client,
		directory: directory,
		catalog:   blogs.NewCatalog(client),
		comments:  comments.NewStore(client, directory, cfg.DefaultUsername),
		sessions:  session.NewStore(cfg.SessionFile),
	}
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.corsMiddleware)
	api.Use(s.loggingMiddleware)

	// Health check
	api.HandleFunc("/health", s.healthHandler).Methods("GET")

	// Session operations
	api.HandleFunc("/login", s.loginHandler).Methods("POST")
	api.HandleFunc("/session", s.sessionHandler).Methods("GET")
	api.HandleFunc("/session", s.logoutHandler).Methods("DELETE")

	// Blog browsing
	api.HandleFunc("/blogs", s.listBlogsHandler).Methods("GET")
	api.HandleFunc("/blogs/{id}", s.blogDetailHandler).Methods("GET")

	// Comment operations
	api.HandleFunc("/blogs/{id}/comments", s.listCommentsHandler).Methods("GET")
	api.HandleFunc("/blogs/{id}/comments", s.createCommentHandler).Methods("POST")

	return r
}

// PingStore checks remote store reachability. Called by the scheduled probe
// in cmd/server.
func (s *Server) PingStore(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// healthHandler provides health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"store":     s.config.StoreBaseURL,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Middleware functions

// corsMiddleware adds CORS headers
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests with a per-request id
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		// Wrap the ResponseWriter to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("%s %s %s %d %v", requestID, r.Method, r.URL.Path, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

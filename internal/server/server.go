package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/seopilot/internal/access"
	"github.com/jonathan/seopilot/internal/config"
	"github.com/jonathan/seopilot/internal/db"
	"github.com/jonathan/seopilot/internal/scrape"
	"github.com/jonathan/seopilot/internal/stats"
)

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	db           *db.DB
	guard        *access.Guard
	stats        *stats.Aggregator
	scraper      *scrape.Service
	validator    *validator.Validate
	jwtService   *JWTService
	userService  *UserService
	authHandler  *AuthHandler
	taskPageSize int
	verbose      bool
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:           database,
		guard:        access.NewGuard(database),
		stats:        stats.New(database),
		validator:    validator.New(),
		taskPageSize: cfg.TaskPageSize,
		verbose:      cfg.Verbose,
	}

	// The gateway goes through the hosted scraping function when one is
	// configured; otherwise pages are fetched locally.
	var client scrape.Client
	if cfg.ScraperFnURL != "" {
		client = scrape.NewRemoteClient(cfg.ScraperFnURL)
	} else {
		client = scrape.NewLocalClient()
	}
	s.scraper = scrape.NewService(client, database)

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // scrape calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Mutating routes sit behind token authentication;
// ownership checks happen per handler.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	protect := middlewareAuth(s)

	mux.Handle("PUT /auth/password", protect(s.authHandler.UpdatePassword))

	// Teams
	mux.Handle("GET /teams", protect(s.handleListTeams))
	mux.Handle("POST /teams", protect(s.handleCreateTeam))
	mux.Handle("GET /teams/{id}", protect(s.handleGetTeam))
	mux.Handle("PUT /teams/{id}", protect(s.handleUpdateTeam))
	mux.Handle("DELETE /teams/{id}", protect(s.handleDeleteTeam))

	// Projects
	mux.Handle("GET /teams/{id}/projects", protect(s.handleListProjects))
	mux.Handle("POST /teams/{id}/projects", protect(s.handleCreateProject))
	mux.Handle("GET /projects/{id}", protect(s.handleGetProject))
	mux.Handle("PUT /projects/{id}", protect(s.handleUpdateProject))
	mux.Handle("DELETE /projects/{id}", protect(s.handleDeleteProject))

	// Tracked URLs, scraping and audits
	mux.Handle("GET /projects/{id}/urls", protect(s.handleListURLs))
	mux.Handle("POST /projects/{id}/urls", protect(s.handleCreateURL))
	mux.Handle("DELETE /urls/{id}", protect(s.handleDeleteURL))
	mux.Handle("POST /urls/{id}/scrape", protect(s.handleScrapeURL))
	mux.Handle("GET /urls/{id}/status", protect(s.handleURLStatus))
	mux.Handle("GET /urls/{id}/audits", protect(s.handleAuditHistory))
	mux.Handle("POST /urls/{id}/audits", protect(s.handleRecordAudit))
	mux.Handle("GET /projects/{id}/audits/latest", protect(s.handleLatestAudit))

	// Tasks and stats
	mux.Handle("GET /projects/{id}/tasks", protect(s.handleListTasks))
	mux.Handle("POST /projects/{id}/tasks", protect(s.handleCreateTask))
	mux.Handle("GET /tasks/{id}", protect(s.handleGetTask))
	mux.Handle("PUT /tasks/{id}", protect(s.handleUpdateTask))
	mux.Handle("DELETE /tasks/{id}", protect(s.handleDeleteTask))
	mux.Handle("GET /projects/{id}/stats", protect(s.handleProjectStats))

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response with a short human-readable
// message. Internals are logged, never sent to clients.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps a domain error to its HTTP status. Detail beyond the
// message goes to the log only when verbose is set.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	if s.verbose {
		log.Printf("[error] %v", err)
	}
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	s.errorResponse(w, status, message)
}

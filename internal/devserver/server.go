// Package devserver is a self-contained implementation of the back-office
// REST contract, used for local development and by the client test suite. It
// mirrors the production backend's envelope, error shapes, and endpoints over
// an in-memory dataset.
package devserver

import (
	"fmt"
	"time"

	"github.com/gorilla/mux"
)

type Server struct {
	store         *Store
	schemas       *schemaSet
	jwtSecret     string
	tokenDuration time.Duration
}

func New(adminEmail, adminPassword, jwtSecret string, tokenDuration time.Duration) (*Server, error) {
	store, err := NewStore(adminEmail, adminPassword)
	if err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}

	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}

	return &Server{
		store:         store,
		schemas:       schemas,
		jwtSecret:     jwtSecret,
		tokenDuration: tokenDuration,
	}, nil
}

// Store exposes the dataset for test seeding.
func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Public endpoints
	r.HandleFunc("/api/auth/login", s.Login).Methods("POST")
	r.HandleFunc("/api/messages", s.CreateMessage).Methods("POST")

	// Authenticated endpoints
	auth := r.PathPrefix("/api").Subrouter()
	auth.Use(BearerAuthMiddleware(s.jwtSecret))

	auth.HandleFunc("/auth/me", s.Me).Methods("GET")
	auth.HandleFunc("/auth/me", s.UpdateMe).Methods("PATCH")
	auth.HandleFunc("/auth/change-password", s.ChangePassword).Methods("PUT")
	auth.HandleFunc("/auth/logout", s.Logout).Methods("POST")

	auth.HandleFunc("/messages", s.ListMessages).Methods("GET")
	auth.HandleFunc("/messages/stats", s.MessageStats).Methods("GET")
	auth.HandleFunc("/messages/{id}", s.GetMessage).Methods("GET")
	auth.HandleFunc("/messages/{id}", s.UpdateMessage).Methods("PATCH")
	auth.HandleFunc("/messages/{id}", s.DeleteMessage).Methods("DELETE")

	auth.HandleFunc("/projects", s.CreateProject).Methods("POST")
	auth.HandleFunc("/projects/{id}", s.UpdateProject).Methods("PATCH")
	auth.HandleFunc("/projects/{id}", s.DeleteProject).Methods("DELETE")

	auth.HandleFunc("/services", s.CreateService).Methods("POST")
	auth.HandleFunc("/services/{id}", s.UpdateService).Methods("PATCH")
	auth.HandleFunc("/services/{id}", s.DeleteService).Methods("DELETE")

	auth.HandleFunc("/stack", s.CreateTechnology).Methods("POST")
	auth.HandleFunc("/stack/{id}", s.UpdateTechnology).Methods("PATCH")
	auth.HandleFunc("/stack/{id}", s.DeleteTechnology).Methods("DELETE")

	auth.HandleFunc("/settings/company", s.UpdateCompany).Methods("PUT")
	auth.HandleFunc("/settings/social", s.UpdateSocial).Methods("PUT")

	// Read endpoints are public: the marketing site renders from them.
	r.HandleFunc("/api/projects", s.ListProjects).Methods("GET")
	r.HandleFunc("/api/projects/{id}", s.GetProject).Methods("GET")
	r.HandleFunc("/api/services", s.ListServices).Methods("GET")
	r.HandleFunc("/api/services/{id}", s.GetService).Methods("GET")
	r.HandleFunc("/api/stack", s.ListTechnologies).Methods("GET")
	r.HandleFunc("/api/stack/stats", s.TechnologyStats).Methods("GET")
	r.HandleFunc("/api/stack/{id}", s.GetTechnology).Methods("GET")
	r.HandleFunc("/api/settings", s.GetSettings).Methods("GET")

	return r
}

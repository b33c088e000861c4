package devserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/brisatech/backoffice/pkg/models"
	"github.com/gorilla/mux"
)

func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	msgs, err := validate(r.Context(), s.schemas.project, payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}
	if len(msgs) > 0 {
		writeError(w, http.StatusBadRequest, msgs, "Bad Request")
		return
	}

	// isActive defaults to true when omitted
	p := models.Project{IsActive: true}
	if err := json.Unmarshal(payload, &p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	writeData(w, http.StatusCreated, s.store.AddProject(&p))
}

func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all := s.store.Projects(boolParam(q.Get("featured")), boolParam(q.Get("isActive")), q.Get("category"), q.Get("search"))

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	lo, hi, pagination := paginate(len(all), page, pageSize)

	writeData(w, http.StatusOK, map[string]any{
		"projects":   all[lo:hi],
		"pagination": pagination,
	})
}

func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.Project(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found", "Not Found")
		return
	}
	writeData(w, http.StatusOK, p)
}

type projectUpdateRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Image        *string   `json:"image"`
	Technologies *[]string `json:"technologies"`
	LiveURL      *string   `json:"liveUrl"`
	GithubURL    *string   `json:"githubUrl"`
	Featured     *bool     `json:"featured"`
	Category     *string   `json:"category"`
	ClientName   *string   `json:"clientName"`
	CompletedAt  *string   `json:"completedAt"`
	IsActive     *bool     `json:"isActive"`
	Order        *int      `json:"order"`
}

func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	updated, ok := s.store.UpdateProject(mux.Vars(r)["id"], func(p *models.Project) {
		if req.Title != nil {
			p.Title = *req.Title
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Image != nil {
			p.Image = *req.Image
		}
		if req.Technologies != nil {
			p.Technologies = *req.Technologies
		}
		if req.LiveURL != nil {
			p.LiveURL = *req.LiveURL
		}
		if req.GithubURL != nil {
			p.GithubURL = *req.GithubURL
		}
		if req.Featured != nil {
			p.Featured = *req.Featured
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.ClientName != nil {
			p.ClientName = *req.ClientName
		}
		if req.CompletedAt != nil {
			p.CompletedAt = *req.CompletedAt
		}
		if req.IsActive != nil {
			p.IsActive = *req.IsActive
		}
		if req.Order != nil {
			p.Order = *req.Order
		}
	})
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found", "Not Found")
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteProject(mux.Vars(r)["id"]) {
		writeError(w, http.StatusNotFound, "Project not found", "Not Found")
		return
	}
	writeMessage(w, http.StatusOK, "Project deleted")
}

// boolParam parses an optional true/false query value; nil means unset.
func boolParam(v string) *bool {
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

package devserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/brisatech/backoffice/pkg/models"
	"github.com/gorilla/mux"
)

func (s *Server) CreateTechnology(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	msgs, err := validate(r.Context(), s.schemas.technology, payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}
	if len(msgs) > 0 {
		writeError(w, http.StatusBadRequest, msgs, "Bad Request")
		return
	}

	t := models.Technology{IsActive: true}
	if err := json.Unmarshal(payload, &t); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	writeData(w, http.StatusCreated, s.store.AddTechnology(&t))
}

func (s *Server) ListTechnologies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all := s.store.Technologies(q.Get("category"), q.Get("level"), boolParam(q.Get("isActive")), q.Get("search"))

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	lo, hi, pagination := paginate(len(all), page, pageSize)

	writeData(w, http.StatusOK, map[string]any{
		"technologies": all[lo:hi],
		"pagination":   pagination,
	})
}

func (s *Server) GetTechnology(w http.ResponseWriter, r *http.Request) {
	t, ok := s.store.Technology(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Technology not found", "Not Found")
		return
	}
	writeData(w, http.StatusOK, t)
}

type technologyUpdateRequest struct {
	Name              *string `json:"name"`
	Category          *string `json:"category"`
	Icon              *string `json:"icon"`
	Level             *string `json:"level"`
	Description       *string `json:"description"`
	YearsOfExperience *int    `json:"yearsOfExperience"`
	IsActive          *bool   `json:"isActive"`
	Order             *int    `json:"order"`
}

func (s *Server) UpdateTechnology(w http.ResponseWriter, r *http.Request) {
	var req technologyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	updated, ok := s.store.UpdateTechnology(mux.Vars(r)["id"], func(t *models.Technology) {
		if req.Name != nil {
			t.Name = *req.Name
		}
		if req.Category != nil {
			t.Category = *req.Category
		}
		if req.Icon != nil {
			t.Icon = *req.Icon
		}
		if req.Level != nil {
			t.Level = *req.Level
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.YearsOfExperience != nil {
			t.YearsOfExperience = *req.YearsOfExperience
		}
		if req.IsActive != nil {
			t.IsActive = *req.IsActive
		}
		if req.Order != nil {
			t.Order = *req.Order
		}
	})
	if !ok {
		writeError(w, http.StatusNotFound, "Technology not found", "Not Found")
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (s *Server) DeleteTechnology(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteTechnology(mux.Vars(r)["id"]) {
		writeError(w, http.StatusNotFound, "Technology not found", "Not Found")
		return
	}
	writeMessage(w, http.StatusOK, "Technology deleted")
}

func (s *Server) TechnologyStats(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.store.TechnologyStats())
}

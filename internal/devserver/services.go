package devserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/brisatech/backoffice/pkg/models"
	"github.com/gorilla/mux"
)

func (s *Server) CreateService(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	msgs, err := validate(r.Context(), s.schemas.service, payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}
	if len(msgs) > 0 {
		writeError(w, http.StatusBadRequest, msgs, "Bad Request")
		return
	}

	svc := models.Service{IsActive: true}
	if err := json.Unmarshal(payload, &svc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	writeData(w, http.StatusCreated, s.store.AddService(&svc))
}

func (s *Server) ListServices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all := s.store.Services(boolParam(q.Get("isActive")), q.Get("category"), q.Get("search"))

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	lo, hi, pagination := paginate(len(all), page, pageSize)

	writeData(w, http.StatusOK, map[string]any{
		"services":   all[lo:hi],
		"pagination": pagination,
	})
}

func (s *Server) GetService(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.store.Service(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Service not found", "Not Found")
		return
	}
	writeData(w, http.StatusOK, svc)
}

type serviceUpdateRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Icon        *string                `json:"icon"`
	Features    *[]string              `json:"features"`
	Pricing     *models.ServicePricing `json:"pricing"`
	Category    *string                `json:"category"`
	IsActive    *bool                  `json:"isActive"`
	Order       *int                   `json:"order"`
}

func (s *Server) UpdateService(w http.ResponseWriter, r *http.Request) {
	var req serviceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	updated, ok := s.store.UpdateService(mux.Vars(r)["id"], func(svc *models.Service) {
		if req.Title != nil {
			svc.Title = *req.Title
		}
		if req.Description != nil {
			svc.Description = *req.Description
		}
		if req.Icon != nil {
			svc.Icon = *req.Icon
		}
		if req.Features != nil {
			svc.Features = *req.Features
		}
		if req.Pricing != nil {
			svc.Pricing = req.Pricing
		}
		if req.Category != nil {
			svc.Category = *req.Category
		}
		if req.IsActive != nil {
			svc.IsActive = *req.IsActive
		}
		if req.Order != nil {
			svc.Order = *req.Order
		}
	})
	if !ok {
		writeError(w, http.StatusNotFound, "Service not found", "Not Found")
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (s *Server) DeleteService(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteService(mux.Vars(r)["id"]) {
		writeError(w, http.StatusNotFound, "Service not found", "Not Found")
		return
	}
	writeMessage(w, http.StatusOK, "Service deleted")
}

package devserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/brisatech/backoffice/pkg/models"
	"github.com/gorilla/mux"
)

func (s *Server) CreateMessage(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	msgs, err := validate(r.Context(), s.schemas.message, payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}
	if len(msgs) > 0 {
		writeError(w, http.StatusBadRequest, msgs, "Bad Request")
		return
	}

	var m models.Message
	if err := json.Unmarshal(payload, &m); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	created := s.store.AddMessage(&m)
	writeData(w, http.StatusCreated, created)
}

func (s *Server) ListMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all := s.store.Messages(q.Get("status"), q.Get("search"))

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	lo, hi, pagination := paginate(len(all), page, pageSize)

	writeData(w, http.StatusOK, map[string]any{
		"messages":   all[lo:hi],
		"pagination": pagination,
	})
}

func (s *Server) GetMessage(w http.ResponseWriter, r *http.Request) {
	m, ok := s.store.Message(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Message not found", "Not Found")
		return
	}
	writeData(w, http.StatusOK, m)
}

type messageUpdateRequest struct {
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
	RespondedBy *string `json:"respondedBy"`
}

func (s *Server) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	var req messageUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}
	if req.Status != nil {
		switch *req.Status {
		case models.MessageStatusNew, models.MessageStatusRead, models.MessageStatusResponded:
		default:
			writeError(w, http.StatusBadRequest, "Unknown message status", "Bad Request")
			return
		}
	}

	updated, ok := s.store.UpdateMessage(mux.Vars(r)["id"], func(m *models.Message) {
		if req.Status != nil {
			m.Status = *req.Status
			if *req.Status == models.MessageStatusResponded {
				now := time.Now().UTC()
				m.RespondedAt = &now
			}
		}
		if req.Notes != nil {
			m.Notes = *req.Notes
		}
		if req.RespondedBy != nil {
			m.RespondedBy = *req.RespondedBy
		}
	})
	if !ok {
		writeError(w, http.StatusNotFound, "Message not found", "Not Found")
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (s *Server) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteMessage(mux.Vars(r)["id"]) {
		writeError(w, http.StatusNotFound, "Message not found", "Not Found")
		return
	}
	writeMessage(w, http.StatusOK, "Message deleted")
}

func (s *Server) MessageStats(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.store.MessageStats())
}

package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/brisatech/backoffice/pkg/models"
)

func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.store.Settings())
}

func (s *Server) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var info models.CompanyInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	updated := s.store.UpdateSettings(func(st *models.Settings) {
		st.CompanyInfo = info
	})
	writeData(w, http.StatusOK, updated)
}

func (s *Server) UpdateSocial(w http.ResponseWriter, r *http.Request) {
	var links models.SocialLinks
	if err := json.NewDecoder(r.Body).Decode(&links); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	updated := s.store.UpdateSettings(func(st *models.Settings) {
		st.SocialLinks = links
	})
	writeData(w, http.StatusOK, updated)
}

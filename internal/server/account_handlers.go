package server

import (
	"net/http"

	"github.com/thenoetrevino/lineage/internal/models"
	profilesvc "github.com/thenoetrevino/lineage/internal/services/profile"
)

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.app.SettingsService.Get(r.Context(), uidFrom(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, settings)
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	settings := models.DefaultSettings()
	if err := decodeJSON(w, r, &settings); err != nil {
		respondErr(w, r, err)
		return
	}

	saved, err := s.app.SettingsService.Save(r.Context(), uidFrom(r), settings)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, saved)
}

// exportSettings sends the export document as a download
func (s *Server) exportSettings(w http.ResponseWriter, r *http.Request) {
	data, err := s.app.SettingsService.Export(r.Context(), uidFrom(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="easyfly-data-export.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.app.ProfileService.Get(r.Context(), uidFrom(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, profile)
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	var req profilesvc.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	profile, err := s.app.ProfileService.Update(r.Context(), uidFrom(r), req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, profile)
}

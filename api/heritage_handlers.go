package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"heritage-survey/model"
	"heritage-survey/storage"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type HeritageHandlers struct {
	Db  storage.HeritageDB
	Log *zap.Logger
}

// Routes builds the router. One handler per route/method pair.
func (h *HeritageHandlers) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(RequestLoggerMiddleware(h.Log), RecoveryMiddleware(h.Log))
	r.HandleFunc("/api/submit-form", h.handleSubmitForm).Methods(http.MethodPost)
	r.HandleFunc("/api/test", h.handleHealthCount).Methods(http.MethodGet)
	r.HandleFunc("/api/submissions", h.handleListSubmissions).Methods(http.MethodGet)
	return r
}

func (h *HeritageHandlers) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	// Intake runs first so an oversized submission is rejected before any
	// validation or persistence work.
	files, err := ExtractImages(r)
	if err != nil {
		if errors.Is(err, ErrPayloadTooLarge) {
			h.Log.Warn("submission over upload limits", zap.Error(err))
			writeError(w, http.StatusRequestEntityTooLarge, "Upload exceeds size limits", err.Error())
			return
		}
		h.Log.Warn("unreadable multipart body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Malformed multipart request", err.Error())
		return
	}

	draft, missing := BuildDraft(url.Values(r.MultipartForm.Value))
	if len(missing) > 0 {
		h.Log.Info("submission missing required fields", zap.Strings("fields", missing))
		writeError(w, http.StatusBadRequest,
			"Missing required fields: "+strings.Join(missing, ", "),
			"Expected fields: "+strings.Join(RequiredFields, ", "))
		return
	}
	draft.Images = model.NewImageSet(files)

	stored, err := h.Db.SaveHeritage(r.Context(), draft)
	if err != nil {
		h.Log.Error("failed to save heritage record", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to submit form", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Form submitted successfully",
		"id":      stored.ID,
		"data":    stored,
	})
}

func (h *HeritageHandlers) handleHealthCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Db.CountHeritages(r.Context())
	if err != nil {
		h.Log.Error("failed to count heritage records", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Test failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":     count,
		"message":   "Test endpoint working",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HeritageHandlers) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	records, err := h.Db.ListHeritages(r.Context())
	if err != nil {
		h.Log.Error("failed to fetch submissions", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch submissions"})
		return
	}
	if records == nil {
		records = []model.HeritageRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errMsg, details string) {
	writeJSON(w, status, map[string]string{"error": errMsg, "details": details})
}

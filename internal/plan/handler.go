package plan

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/floorcast/floorcast/backend-go/internal/auth"
	"github.com/floorcast/floorcast/backend-go/internal/document"
	"github.com/floorcast/floorcast/backend-go/internal/export"
	"github.com/floorcast/floorcast/backend-go/internal/notify"
	"github.com/floorcast/floorcast/backend-go/internal/sink"
	"github.com/floorcast/floorcast/backend-go/internal/typeid"
)

type Handler struct {
	service *Service
	archive *export.Archive
	hub     *notify.Hub
}

func NewHandler(service *Service, archive *export.Archive, hub *notify.Hub) *Handler {
	return &Handler{service: service, archive: archive, hub: hub}
}

type createRequest struct {
	Name string `json:"name"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	p, err := h.service.Create(r.Context(), req.Name, auth.UserIDFromContext(r.Context()))
	if err != nil {
		slog.Error("create plan", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.List(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		slog.Error("list plans", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if plans == nil {
		plans = []Plan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), mux.Vars(r)["planId"], auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, "get plan")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), mux.Vars(r)["planId"], auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, "delete plan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetLatestDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.LatestDocument(r.Context(), mux.Vars(r)["planId"], auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, "get latest document")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var doc document.Plan
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document body"})
		return
	}

	version, err := h.service.SaveSnapshot(r.Context(), mux.Vars(r)["planId"], auth.UserIDFromContext(r.Context()), &doc)
	if err != nil {
		writeServiceError(w, err, "save snapshot")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int32{"version": version})
}

// Export converts a plan's latest snapshot, archives the bundle, notifies
// websocket watchers, and answers with the download location.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["planId"]

	out, err := h.service.Export(r.Context(), planID, auth.UserIDFromContext(r.Context()), export.OptionsFromQuery(r.URL.Query()))
	if err != nil {
		writeServiceError(w, err, "export plan")
		return
	}

	for _, n := range out.Notices {
		slog.Info("conversion notice", "plan", planID, "notice", n)
		h.hub.Broadcast(planID, notify.TypeExportNotice, notify.ExportNoticePayload{Message: n})
	}

	if out.Payload == nil || out.Payload.Kind == sink.KindError {
		msg := "conversion produced no result"
		if out.Payload != nil {
			msg = out.Payload.Message
		}
		h.hub.Broadcast(planID, notify.TypeExportError, notify.ExportErrorPayload{Message: msg})
		writeJSON(w, http.StatusUnprocessableEntity, sink.Payload{Kind: sink.KindError, Message: msg})
		return
	}

	exportID := typeid.NewExportID()
	url, err := h.archive.Save(exportID, out.Payload.Floors)
	if err != nil {
		slog.Error("archive export", "error", err, "plan", planID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	h.hub.Broadcast(planID, notify.TypeExportComplete, notify.ExportCompletePayload{
		ExportID: exportID,
		Filename: out.Payload.Filename,
		URL:      url,
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"exportId": exportID,
		"filename": out.Payload.Filename,
		"url":      url,
	})
}

func writeServiceError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	default:
		slog.Error(op, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wrongjunior/radiator/internal/domain"
)

const maxBodySize = 1 << 20

// GetConfiguration отдаёт сохранённую конфигурацию или начальную, если сохранённой нет.
func (h *Handler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg, ok, err := h.Configurations.Get()
	if err != nil {
		h.Logger.Error("Failed to read configuration", "error", err)
		http.Error(w, "configuration unavailable", http.StatusInternalServerError)
		return
	}
	if !ok {
		cfg = h.Seed
	}
	writeJSON(w, http.StatusOK, cfg)
}

// SetConfiguration сохраняет конфигурацию целиком.
func (h *Handler) SetConfiguration(w http.ResponseWriter, r *http.Request) {
	var cfg domain.Configuration
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&cfg); err != nil {
		http.Error(w, "invalid configuration: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Configurations.Set(cfg); err != nil {
		h.Logger.Error("Failed to store configuration", "error", err)
		http.Error(w, "configuration not stored", http.StatusInternalServerError)
		return
	}
	h.Logger.Info("Configuration stored", "name", cfg.Name, "pages", len(cfg.Pages))
	w.WriteHeader(http.StatusNoContent)
}

// SubmitEvent принимает событие от публикатора. ID берётся из пути.
func (h *Handler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}
	event, err := decodeSubmitted(id, body)
	if err != nil {
		http.Error(w, "invalid event: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.EventService.Publish(event); err != nil {
		h.Logger.Error("Failed to publish event", "id", id, "error", err)
		http.Error(w, "event not stored", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// GetEvent отдаёт последнее значение события.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	event, ok, err := h.EventService.Latest(id)
	if err != nil {
		h.Logger.Error("Failed to read event", "id", id, "error", err)
		http.Error(w, "event unavailable", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func decodeSubmitted(id string, body []byte) (domain.Event, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return domain.Event{}, err
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage)
	}
	rawID, err := json.Marshal(id)
	if err != nil {
		return domain.Event{}, err
	}
	fields["id"] = rawID
	merged, err := json.Marshal(fields)
	if err != nil {
		return domain.Event{}, err
	}
	var event domain.Event
	err = json.Unmarshal(merged, &event)
	return event, err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

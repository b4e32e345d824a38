package gallery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cardsapi/internal/config"
	"cardsapi/internal/logger"
	"cardsapi/internal/notion"
)

type Handlers struct {
	svc      Service
	setupErr error
}

// NewHandlers builds the card handlers. A non-nil setupErr (typically a
// *config.MissingError) is reported on every request instead of calling svc.
func NewHandlers(s Service, setupErr error) *Handlers {
	return &Handlers{svc: s, setupErr: setupErr}
}

type cardsResponse struct {
	OK    bool       `json:"ok"`
	Count int        `json:"count"`
	Items []Item     `json:"items"`
	Debug *debugInfo `json:"debug,omitempty"`
}

type debugInfo struct {
	DatabaseID       string   `json:"databaseId"`
	PlatformParam    string   `json:"platformParam"`
	PropertyKeysSeen []string `json:"propertyKeysSeen"`
	HasMore          bool     `json:"hasMore"`
}

type errorResponse struct {
	OK     bool            `json:"ok"`
	Error  string          `json:"error,omitempty"`
	Hint   string          `json:"hint,omitempty"`
	Reason string          `json:"reason,omitempty"`
	Need   map[string]bool `json:"need,omitempty"`
}

func (h *Handlers) Cards(w http.ResponseWriter, r *http.Request) {
	if h.setupErr != nil {
		h.setupFailure(w)
		return
	}

	q := Query{
		Platform: strFromQuery(r, "platform", AllPlatforms),
		Debug:    debugFromQuery(r),
	}
	res, err := h.svc.Items(r.Context(), q)
	if err != nil {
		status := http.StatusInternalServerError
		var apiErr *notion.APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status <= 599 {
			status = apiErr.Status
		}
		logger.Log.WithError(err).WithField("status", status).Warn("Notion query failed")
		writeJSON(w, status, errorResponse{
			OK:    false,
			Error: err.Error(),
			Hint:  h.svc.Fields().Hint(),
		})
		return
	}

	out := cardsResponse{
		OK:    true,
		Count: len(res.Items),
		Items: res.Items,
	}
	if out.Items == nil {
		out.Items = []Item{}
	}
	if q.Debug {
		out.Debug = &debugInfo{
			DatabaseID:       res.DatabaseID,
			PlatformParam:    q.Platform,
			PropertyKeysSeen: res.PropertyKeysSeen,
			HasMore:          res.HasMore,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) setupFailure(w http.ResponseWriter) {
	var missing *config.MissingError
	if errors.As(h.setupErr, &missing) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			OK:     false,
			Reason: "Missing environment variables",
			Need:   missing.Need,
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		OK:    false,
		Error: h.setupErr.Error(),
	})
}

// debugFromQuery enables debug output for any non-empty debug value other
// than an explicit false.
func debugFromQuery(r *http.Request) bool {
	if strings.TrimSpace(r.URL.Query().Get("debug")) == "" {
		return false
	}
	return boolFromQuery(r, "debug", true)
}

func boolFromQuery(r *http.Request, key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key)))
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func strFromQuery(r *http.Request, key, def string) string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

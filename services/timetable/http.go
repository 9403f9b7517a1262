package timetable

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// Credentials are forwarded as-is to the site on every build.
type Credentials struct {
	Username string
	Password string
}

const hintPage = "<h1>Use /total or /get/classname</h1>"

const calendarContentType = "text/calendar; charset=utf-8"

type httpHandler struct {
	service Service
	creds   Credentials
	now     func() time.Time
}

// RegisterRoutes adds the plain HTTP routes to `mux`:
//
//	GET /                  usage hint
//	GET /total             snapshot of every class
//	GET /get/{class}       snapshot of one class
//	GET /ical              iCalendar rendering of /total
//	GET /ical/{class}      iCalendar rendering of /get/{class}
//	GET /suggest/{query}   class names similar to query
//
// failures are answered with status 500 and a body of {"error": "..."}.
func RegisterRoutes(mux *http.ServeMux, service Service, creds Credentials) {
	h := httpHandler{
		service: service,
		creds:   creds,
		now:     time.Now,
	}
	mux.HandleFunc("GET /{$}", h.hint)
	mux.HandleFunc("GET /total", h.total)
	mux.HandleFunc("GET /get/{class}", h.class)
	mux.HandleFunc("GET /ical", h.calendar)
	mux.HandleFunc("GET /ical/{class}", h.calendar)
	mux.HandleFunc("GET /suggest/{query}", h.suggest)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJson(w http.ResponseWriter, r *http.Request, status int, value any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(value)
	if err != nil {
		slog.WarnContext(r.Context(), "write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "build snapshot", "path", r.URL.Path, "err", err)
	writeJson(w, r, http.StatusInternalServerError, errorBody{Error: err.Error()})
}

func (h httpHandler) hint(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("content-type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(hintPage))
}

func (h httpHandler) serveSnapshot(w http.ResponseWriter, r *http.Request, filter string) {
	snapshot, err := h.service.BuildSnapshot(r.Context(), h.creds.Username, h.creds.Password, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJson(w, r, http.StatusOK, snapshot)
}

func (h httpHandler) total(w http.ResponseWriter, r *http.Request) {
	h.serveSnapshot(w, r, NoFilter)
}

func (h httpHandler) class(w http.ResponseWriter, r *http.Request) {
	h.serveSnapshot(w, r, r.PathValue("class"))
}

func (h httpHandler) calendar(w http.ResponseWriter, r *http.Request) {
	filter := r.PathValue("class")
	name := "Timetable"
	if filter == "" {
		filter = NoFilter
	} else {
		name = "Timetable " + filter
	}

	snapshot, err := h.service.BuildSnapshot(r.Context(), h.creds.Username, h.creds.Password, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("content-type", calendarContentType)
	_, _ = w.Write([]byte(ToCalendar(r.Context(), snapshot, name, h.now())))
}

func (h httpHandler) suggest(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJson(w, r, http.StatusBadRequest, errorBody{Error: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	snapshot, err := h.service.BuildSnapshot(r.Context(), h.creds.Username, h.creds.Password, NoFilter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	suggestions := SuggestClasses(snapshot, r.PathValue("query"), limit)
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	writeJson(w, r, http.StatusOK, suggestions)
}

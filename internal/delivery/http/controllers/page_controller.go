package controllers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	h "landingwaitlist/internal/delivery/http/helpers"
	"landingwaitlist/internal/submission"
)

//go:embed views/*.html
var viewsFS embed.FS

var landingTemplate = template.Must(template.ParseFS(viewsFS, "views/landing.html"))

// landingView is the data rendered by views/landing.html.
type landingView struct {
	State submission.State
	Count int
}

// PageController serves the server-rendered waitlist form.
type PageController struct {
	Logger   *slog.Logger
	Waitlist *WaitlistController
}

func NewPageController(logger *slog.Logger, waitlist *WaitlistController) *PageController {
	return &PageController{Logger: logger, Waitlist: waitlist}
}

// Landing renders the empty form.
func (c *PageController) Landing(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	c.render(w, r, http.StatusOK, submission.State{})
}

// Join handles the form post and renders the form with the outcome.
func (c *PageController) Join(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 16<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	state := c.Waitlist.submit(r.Context(), r.PostForm.Get("email"))
	status := http.StatusOK
	if state.Status == submission.StatusFailed {
		status = h.StatusForCode(failureCode(state.Failure))
	}
	c.render(w, r, status, state)
}

func (c *PageController) render(w http.ResponseWriter, r *http.Request, status int, state submission.State) {
	var buf bytes.Buffer
	view := landingView{State: state, Count: c.Waitlist.Service.Count(r.Context())}
	if err := landingTemplate.Execute(&buf, view); err != nil {
		c.Logger.ErrorContext(r.Context(), "render landing page", "path", r.URL.Path, "method", r.Method, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

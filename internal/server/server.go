package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/formstate"
	"github.com/goliatone/go-dynform/pkg/model"
	pkgopenapi "github.com/goliatone/go-dynform/pkg/openapi"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/schema"
)

// sessionField names the hidden input carrying the session id.
var sessionField = render.SessionField("").Name

// Option configures a Server.
type Option func(*Server)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry registers the metrics collectors on registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithRenderer names the renderer producing pages. The orchestrator's
// default renderer is used otherwise.
func WithRenderer(name string) Option {
	return func(s *Server) {
		s.renderer = name
	}
}

// WithOpenAPI serves the operations of src under /operations/{id}.
func WithOpenAPI(src pkgopenapi.Source) Option {
	return func(s *Server) {
		s.openapi = src
	}
}

// WithTheme selects the theme passed to the orchestrator for every form.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.themeName = name
		s.themeVariant = variant
	}
}

// WithSessionTTL bounds how long an idle session survives.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.ttl = ttl
	}
}

// WithSubmitHandler runs handler for every valid submission. Returning an
// error shows the form's error feedback.
func WithSubmitHandler(handler formstate.SubmitFunc) Option {
	return func(s *Server) {
		s.onSubmit = handler
	}
}

func withClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// Server serves declarative forms over HTTP. Each rendered page opens a
// session holding the live form; POSTs replay the submitted values through
// the form's controls and submit it.
type Server struct {
	orch         *orchestrator.Orchestrator
	renderer     string
	openapi      pkgopenapi.Source
	themeName    string
	themeVariant string
	ttl          time.Duration
	now          func() time.Time
	onSubmit     formstate.SubmitFunc
	registry     *prometheus.Registry
	metrics      *Metrics
	sessions     *sessionStore
	logger       *slog.Logger
}

// New builds a server over orch.
func New(orch *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is nil")
	}
	s := &Server{
		orch:   orch,
		ttl:    30 * time.Minute,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if _, err := orch.Renderer(s.renderer); err != nil {
		return nil, err
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = NewMetrics(s.registry)
	s.sessions = newSessionStore(s.ttl, s.now)
	s.sessions.onChange = func(active int) { s.metrics.sessions.Set(float64(active)) }
	return s, nil
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)
	r.Use(s.logRequests)

	r.Get("/", s.index)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Get("/forms/{id}", s.show(formTarget))
	r.Post("/forms/{id}", s.submit(formTarget))
	r.Get("/operations/{id}", s.show(operationTarget))
	r.Post("/operations/{id}", s.submit(operationTarget))
	return r
}

type targetKind string

const (
	formTarget      targetKind = "forms"
	operationTarget targetKind = "operations"
)

func (s *Server) request(kind targetKind, id string) orchestrator.Request {
	req := orchestrator.Request{
		Renderer:     s.renderer,
		ThemeName:    s.themeName,
		ThemeVariant: s.themeVariant,
		Bindings: schema.Bindings{
			OnSubmit: s.submitHandler(kind, id),
			Fallback: func(action model.Action) {
				s.logger.Debug("button activated", slog.String("form", id), slog.String("action", action.Title))
			},
		},
	}
	if kind == operationTarget {
		req.OperationID = id
		req.Source = s.openapi
	} else {
		req.FormID = id
	}
	return req
}

func (s *Server) submitHandler(kind targetKind, id string) formstate.SubmitFunc {
	return func(ctx context.Context, values map[string]any, h *formstate.Helpers) error {
		s.logger.Info("form submitted",
			slog.String("kind", string(kind)),
			slog.String("form", id),
			slog.Int("fields", len(values)),
		)
		if s.onSubmit != nil {
			return s.onSubmit(ctx, values, h)
		}
		return nil
	}
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	body := map[string][]string{"forms": s.orch.Forms()}
	if s.openapi != nil {
		ids, err := s.orch.Operations(r.Context(), orchestrator.Request{Source: s.openapi})
		if err != nil {
			s.fail(w, r, http.StatusInternalServerError, err)
			return
		}
		body["operations"] = ids
	}
	if body["forms"] == nil {
		body["forms"] = []string{}
	}
	s.writeJSON(w, http.StatusOK, body)
}

func (s *Server) show(kind targetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if kind == operationTarget && s.openapi == nil {
			http.NotFound(w, r)
			return
		}
		f, err := s.orch.Form(context.WithoutCancel(r.Context()), s.request(kind, id))
		if err != nil {
			s.fail(w, r, http.StatusNotFound, err)
			return
		}
		sess := s.sessions.add(sessionKey(kind, id), f)
		s.logger.Debug("session opened", slog.String("session", sess.id), slog.String("form", id))

		sess.mu.Lock()
		defer sess.mu.Unlock()
		s.renderPage(w, r, http.StatusOK, sess, renderValues(r))
	}
}

func (s *Server) submit(kind targetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if kind == operationTarget && s.openapi == nil {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}

		key := sessionKey(kind, id)
		sess, ok := s.sessions.get(r.PostForm.Get(sessionField), key)
		if !ok {
			f, err := s.orch.Form(context.WithoutCancel(r.Context()), s.request(kind, id))
			if err != nil {
				s.fail(w, r, http.StatusNotFound, err)
				return
			}
			sess = s.sessions.add(key, f)
			s.logger.Debug("session reopened", slog.String("session", sess.id), slog.String("form", id))
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()

		status, outcome := s.process(r.Context(), sess.form, r)
		s.metrics.submitted(id, outcome)
		if outcome == "submitted" {
			s.sessions.remove(sess.id)
		}
		s.renderPage(w, r, status, sess, nil)
	}
}

// process replays the post and submits. It returns the response status and
// the outcome label recorded in the metrics.
func (s *Server) process(ctx context.Context, f *form.Form, r *http.Request) (int, string) {
	invalidDates, err := applyPosted(f, r.PostForm)
	if err != nil {
		s.logger.Warn("replay posted values", slog.Any("error", err))
		return http.StatusBadRequest, "rejected"
	}
	if len(invalidDates) > 0 {
		engine := f.Engine()
		engine.ValidateForm()
		for _, name := range engine.Fields() {
			engine.SetFieldTouched(name, true)
		}
		for name, msg := range invalidDates {
			engine.SetFieldError(name, msg)
		}
		return http.StatusUnprocessableEntity, "invalid"
	}

	err = f.Submit(ctx)
	switch {
	case err == nil:
		feedback := f.Feedback()
		if _, ok := feedback.Get(model.FeedbackSuccess); !ok {
			feedback = feedback.With(model.FeedbackEntry{Kind: model.FeedbackSuccess, Title: "Thank you"})
		}
		if showErr := f.SetFeedback(feedback.Show(model.FeedbackSuccess)); showErr != nil {
			s.logger.Warn("show feedback", slog.Any("error", showErr))
		}
		return http.StatusOK, "submitted"
	case errors.Is(err, formstate.ErrInvalid):
		return http.StatusUnprocessableEntity, "invalid"
	case errors.Is(err, formstate.ErrSubmitInFlight):
		return http.StatusConflict, "in_flight"
	default:
		feedback := f.Feedback()
		if _, ok := feedback.Get(model.FeedbackError); !ok {
			feedback = feedback.With(render.ErrorFeedback("Submission failed", []string{err.Error()}))
		}
		if showErr := f.SetFeedback(feedback.Show(model.FeedbackError)); showErr != nil {
			s.logger.Warn("show feedback", slog.Any("error", showErr))
		}
		return http.StatusBadGateway, "failed"
	}
}

type submissionResponse struct {
	Session  string            `json:"session,omitempty"`
	Values   map[string]any    `json:"values"`
	Errors   map[string]string `json:"errors,omitempty"`
	Feedback []string          `json:"feedback,omitempty"`
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, sess *session, values map[string]any) {
	if wantsJSON(r) {
		f := sess.form
		render.Apply(f, render.RenderOptions{Values: values})
		resp := submissionResponse{
			Session: sess.id,
			Values:  f.Engine().Values(),
			Errors:  f.Engine().Errors(),
		}
		for _, entry := range f.Feedback().Visible() {
			resp.Feedback = append(resp.Feedback, entry.Title)
		}
		s.writeJSON(w, status, resp)
		return
	}

	renderer, err := s.orch.Renderer(s.renderer)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	opts := render.RenderOptions{
		Values:       values,
		Theme:        sess.form.Config().Theme,
		Action:       r.URL.Path,
		Method:       http.MethodPost,
		HiddenFields: render.MergeHiddenFields(nil, render.SessionField(sess.id)),
	}
	out, err := renderer.Render(r.Context(), sess.form, opts)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		s.logger.Debug("write response", slog.Any("error", err))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("write response", slog.Any("error", err))
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Warn("request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("error", err),
	)
	if wantsJSON(r) {
		s.writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", s.now().Sub(start)),
		)
	})
}

func sessionKey(kind targetKind, id string) string {
	return string(kind) + "/" + id
}

// renderValues reads prefill values from the query string.
func renderValues(r *http.Request) map[string]any {
	query := r.URL.Query()
	if len(query) == 0 {
		return nil
	}
	out := make(map[string]any, len(query))
	for name, values := range query {
		if len(values) > 0 {
			out[name] = values[0]
		}
	}
	return out
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

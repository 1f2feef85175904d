package web

import (
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/hlog"

    "github.com/jaminalder/tic-tac-toe-history/internal/app"
)

type options struct {
    log       zerolog.Logger
    heartbeat time.Duration
    timeout   time.Duration
}

// Option configures NewServer.
type Option func(*options)

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.log = l } }

// WithHeartbeat sets the SSE keep-alive interval.
func WithHeartbeat(d time.Duration) Option {
    return func(o *options) {
        if d > 0 {
            o.heartbeat = d
        }
    }
}

// WithRequestTimeout bounds every non-streaming handler.
func WithRequestTimeout(d time.Duration) Option {
    return func(o *options) {
        if d > 0 {
            o.timeout = d
        }
    }
}

// NewServer wires routes and returns an http.Handler.
// It installs the board renderer on s so subscribers receive board fragments.
func NewServer(s *app.Service, opts ...Option) http.Handler {
    o := options{log: zerolog.Nop(), heartbeat: 15 * time.Second, timeout: 10 * time.Second}
    for _, opt := range opts {
        opt(&o)
    }
    h := &handlers{svc: s, tpl: loadTemplates(), heartbeat: o.heartbeat}
    s.SetRenderer(func(gs app.GameState) []byte { return h.renderBoard(gs, "") })

    r := chi.NewRouter()
    r.Use(middleware.RequestID)
    r.Use(middleware.RealIP)
    r.Use(hlog.NewHandler(o.log))
    r.Use(accessLog)
    r.Use(middleware.Recoverer)

    bounded := middleware.Timeout(o.timeout)
    r.Get("/healthz", h.health)
    r.With(bounded).Get("/", h.index)
    r.With(bounded).Post("/game", h.create)
    r.Route("/game/{id}", func(r chi.Router) {
        r.Get("/events", h.events)
        r.Group(func(r chi.Router) {
            r.Use(bounded)
            r.Get("/", h.view)
            r.Get("/state", h.state)
            r.Post("/play", h.play)
            r.Post("/jump", h.jump)
            r.Post("/order", h.order)
        })
    })
    return r
}

var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
    hlog.FromRequest(r).Info().
        Str("method", r.Method).
        Str("path", r.URL.Path).
        Str("req_id", middleware.GetReqID(r.Context())).
        Int("status", status).
        Int("size", size).
        Dur("duration", d).
        Msg("request")
})

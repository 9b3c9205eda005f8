package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campsight/campsight/internal/availability"
	"github.com/campsight/campsight/internal/config"
	"github.com/campsight/campsight/internal/directory"
)

//go:embed assets/*
var assets embed.FS

// Checker runs one availability check. Satisfied by availability.Resolver.
type Checker interface {
	Check(ctx context.Context, names []string, start, end time.Time) (*availability.Report, error)
}

// Roster lists the campgrounds shown on the index page and names report keys.
type Roster interface {
	Entries() []directory.Entry
	NameFor(id string) (string, bool)
}

// Linker builds public campground page links.
type Linker interface {
	CampgroundURL(campgroundID string) string
}

type Server struct {
	checker  Checker
	roster   Roster
	links    Linker
	log      *slog.Logger
	validate *validator.Validate
	tmpl     *template.Template
	css      template.CSS
	js       template.JS
}

// NewServer loads the embedded assets and wires the handlers. It panics on a
// malformed asset; that is a build defect, not a runtime condition.
func NewServer(checker Checker, roster Roster, links Linker, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	cssBytes, err := assets.ReadFile("assets/style.css")
	if err != nil {
		panic(fmt.Sprintf("failed to read CSS file: %v", err))
	}
	jsBytes, err := assets.ReadFile("assets/app.js")
	if err != nil {
		panic(fmt.Sprintf("failed to read JS file: %v", err))
	}

	tmpl, err := template.ParseFS(assets, "assets/*.html")
	if err != nil {
		panic(fmt.Sprintf("failed to parse templates: %v", err))
	}
	// Execute both pages once against empty views to surface field errors at
	// startup instead of on the first request.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "index.html", indexView{}); err != nil {
		panic(fmt.Sprintf("failed to execute index template: %v", err))
	}
	buf.Reset()
	if err := tmpl.ExecuteTemplate(&buf, "results.html", resultsView{}); err != nil {
		panic(fmt.Sprintf("failed to execute results template: %v", err))
	}
	log.Info("loaded web assets",
		slog.Int("css_bytes", len(cssBytes)),
		slog.Int("js_bytes", len(jsBytes)))

	return &Server{
		checker:  checker,
		roster:   roster,
		links:    links,
		log:      log,
		validate: validator.New(),
		tmpl:     tmpl,
		css:      template.CSS(cssBytes),
		js:       template.JS(jsBytes),
	}
}

// Router assembles the route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/availability", s.handleAvailability)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, cfg config.HTTPServer) error {
	server := &http.Server{
		Addr:         cfg.Address,
		Handler:      s.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		s.log.Info("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.log.Error("web server shutdown failed", slog.Any("err", err))
		}
	}()

	s.log.Info("starting web server", slog.String("addr", cfg.Address))
	return server.ListenAndServe()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request served",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(started)),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	})
}

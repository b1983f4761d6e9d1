// Package api exposes the HTTP interface for the render service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cry808/seorender/internal/botdetect"
	"github.com/cry808/seorender/internal/config"
	"github.com/cry808/seorender/internal/content"
	"github.com/cry808/seorender/internal/render"
	"github.com/cry808/seorender/internal/slug"
	"github.com/cry808/seorender/internal/telemetry"
)

// ArticleGetter is the slice of the content client the article handlers use.
type ArticleGetter interface {
	GetArticle(ctx context.Context, id int64) (*content.Article, error)
}

// SitemapGenerator renders the sitemap feed.
type SitemapGenerator interface {
	Generate(ctx context.Context) ([]byte, error)
}

// ShellFetcher retrieves the static client application shell.
type ShellFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Server wires HTTP handlers to the renderer and its collaborators.
type Server struct {
	router     chi.Router
	articles   ArticleGetter
	sitemap    SitemapGenerator
	shell      ShellFetcher
	classifier *botdetect.Classifier
	site       render.Site
	cfg        config.Config
	logger     *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(
	articles ArticleGetter,
	sitemap SitemapGenerator,
	shell ShellFetcher,
	classifier *botdetect.Classifier,
	cfg config.Config,
	logger *zap.Logger,
) *Server {
	telemetry.Init()
	s := &Server{
		articles:   articles,
		sitemap:    sitemap,
		shell:      shell,
		classifier: classifier,
		site: render.Site{
			Origin:  cfg.Site.Origin,
			Name:    cfg.Site.Name,
			LogoURL: cfg.Site.LogoURL,
		},
		cfg:    cfg,
		logger: logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(timeoutMiddleware(30 * time.Second))
	r.Use(telemetry.Middleware)

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", telemetry.Handler())

	r.Get("/robots.txt", s.robots)
	r.Get("/sitemap.xml", s.sitemapXML)
	r.Get("/article/{ref}", s.article)
	r.Get("/article/{ref}/{slug}", s.article)

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	// Readiness mirrors liveness: the only downstream is the content API,
	// and its failures already degrade per-request.
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, s.logger)
}

func (s *Server) robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	body := "User-agent: *\nAllow: /\n\nSitemap: " +
		strings.TrimRight(s.site.Origin, "/") + "/sitemap.xml\n"
	if _, err := w.Write([]byte(body)); err != nil {
		s.logger.Error("robots write failed", zap.Error(err))
	}
}

func (s *Server) sitemapXML(w http.ResponseWriter, r *http.Request) {
	body, err := s.sitemap.Generate(r.Context())
	if err != nil {
		telemetry.ObserveUpstream("list_articles", "error")
		s.logger.Error("sitemap generation failed", zap.Error(err))
		// No sensible redirect target exists for a feed endpoint.
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("failed to generate sitemap\n"))
		return
	}
	telemetry.ObserveUpstream("list_articles", "ok")
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, s-maxage=3600, stale-while-revalidate=86400")
	if _, err := w.Write(body); err != nil {
		s.logger.Error("sitemap write failed", zap.Error(err))
	}
}

// article implements the crawler-aware render flow for both route shapes.
// Every failure degrades to a 307 so no caller ever sees a 500 here.
func (s *Server) article(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	style := render.IDRoute
	if strings.Contains(ref, "-") {
		style = render.SlugRoute
	}

	id, err := slug.ParseID(ref)
	if err != nil {
		telemetry.ObserveRender(string(style), telemetry.ModeCrawler, telemetry.OutcomeRedirect)
		s.logger.Info("bad article identifier", zap.String("ref", ref))
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	if !s.classifier.IsCrawler(r.Header.Get("User-Agent")) {
		s.passthrough(w, r, style)
		return
	}
	s.renderForCrawler(w, r, id, style)
}

// passthrough relays the static app shell so the SPA can route client-side
// while the exact article URL still answers 200.
func (s *Server) passthrough(w http.ResponseWriter, r *http.Request, style render.RouteStyle) {
	body, err := s.shell.Fetch(r.Context())
	if err != nil {
		telemetry.ObserveRender(string(style), telemetry.ModePassthrough, telemetry.OutcomeRedirect)
		s.logger.Warn("shell fetch failed", zap.Error(err))
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}
	telemetry.ObserveRender(string(style), telemetry.ModePassthrough, telemetry.OutcomeRendered)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(body); err != nil {
		s.logger.Error("shell write failed", zap.Error(err))
	}
}

func (s *Server) renderForCrawler(w http.ResponseWriter, r *http.Request, id int64, style render.RouteStyle) {
	article, err := s.articles.GetArticle(r.Context(), id)
	if err != nil {
		result := "error"
		if errors.Is(err, content.ErrNotFound) {
			result = "not_found"
		}
		telemetry.ObserveUpstream("get_article", result)
		telemetry.ObserveRender(string(style), telemetry.ModeCrawler, telemetry.OutcomeRedirect)
		s.logger.Warn("article fetch failed",
			zap.Int64("article_id", id),
			zap.Error(err),
		)
		// Send the crawler to the canonical human-facing path, not home, so
		// it is not bounced to an unrelated page.
		http.Redirect(w, r, r.URL.Path, http.StatusTemporaryRedirect)
		return
	}
	telemetry.ObserveUpstream("get_article", "ok")

	html, err := render.ArticlePage(article, r.URL.Path, s.site, style)
	if err != nil {
		telemetry.ObserveRender(string(style), telemetry.ModeCrawler, telemetry.OutcomeError)
		s.logger.Error("article render failed", zap.Int64("article_id", id), zap.Error(err))
		http.Redirect(w, r, r.URL.Path, http.StatusTemporaryRedirect)
		return
	}
	telemetry.ObserveRender(string(style), telemetry.ModeCrawler, telemetry.OutcomeRendered)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(html); err != nil {
		s.logger.Error("article write failed", zap.Error(err))
	}
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("error", rec))
				writeError(w, http.StatusInternalServerError, "internal server error", s.logger)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

type requestIDKey struct{}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("write JSON failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string, logger *zap.Logger) {
	writeJSON(w, status, map[string]string{"error": msg}, logger)
}

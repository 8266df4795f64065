package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-media-api/internal/config"
	"go-media-api/internal/handler"
	"go-media-api/internal/metrics"
	"go-media-api/internal/middleware"
)

type Handlers struct {
	Health *handler.HealthHandler
	Auth   *handler.AuthHandler
	Audit  *handler.AuditHandler
	Movie  *handler.MovieHandler
	Clip   *handler.ClipSceneHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics, promGatherer prometheus.Gatherer, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health.Check)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promGatherer, promhttp.HandlerOpts{}))

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.Post("/register", h.Auth.Register)
			auth.Post("/change-password", h.Auth.ChangePassword)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		// Any valid token may read any user's trail; tighten here if the
		// audit endpoints ever become admin-only.
		api.Route("/audit", func(audit chi.Router) {
			audit.Use(authMiddleware.RequireAuth)
			audit.Get("/logs", h.Audit.ListAll)
			audit.Get("/logs/user/{user_id}", h.Audit.ListByUser)
		})

		api.Route("/movies", func(movies chi.Router) {
			movies.Use(authMiddleware.RequireAuth)
			movies.Post("/", h.Movie.Create)
			movies.Get("/", h.Movie.List)
			movies.Get("/{movie_id}", h.Movie.Get)
			movies.Put("/{movie_id}", h.Movie.Update)
			movies.Delete("/{movie_id}", h.Movie.Delete)
		})

		api.Route("/clips-scenes", func(clips chi.Router) {
			clips.Use(authMiddleware.RequireAuth)
			clips.Post("/", h.Clip.Create)
			clips.Get("/{clip_scene_id}", h.Clip.Get)
			clips.Get("/movie/{movie_id}", h.Clip.ListByMovie)
			clips.Put("/{clip_scene_id}", h.Clip.Update)
			clips.Delete("/{clip_scene_id}", h.Clip.Delete)
			clips.Post("/{clip_scene_id}/upload-video", h.Clip.UploadVideo)
			clips.Delete("/{clip_scene_id}/video", h.Clip.DeleteVideo)
			clips.Get("/{clip_scene_id}/video-url", h.Clip.PlaybackURL)
		})
	})

	return r
}

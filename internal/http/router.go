package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/school4u/api/internal/auth"
	"github.com/school4u/api/internal/cache"
	"github.com/school4u/api/internal/config"
	"github.com/school4u/api/internal/dataset"
	"github.com/school4u/api/internal/geocode"
	httpmiddleware "github.com/school4u/api/internal/http/middleware"
	"github.com/school4u/api/internal/repo"
)

type userStore interface {
	CreateUser(ctx context.Context, input repo.CreateUserInput) (repo.User, error)
	GetUserByUsername(ctx context.Context, username string) (repo.User, error)
}

type chatStore interface {
	ListMessages(ctx context.Context, room repo.Room, schoolID int64) ([]repo.ChatMessage, error)
	InsertMessage(ctx context.Context, room repo.Room, schoolID int64, body string) (repo.ChatMessage, error)
}

type favoriteStore interface {
	AddFavorite(ctx context.Context, userID int64, schoolName string) error
	ListFavorites(ctx context.Context, userID int64) ([]repo.FavoriteSchool, error)
}

type reviewStore interface {
	CreateReview(ctx context.Context, input repo.CreateReviewInput) (repo.Review, error)
	ListReviews(ctx context.Context, schoolName string) ([]repo.Review, error)
}

type schoolAggregator interface {
	Aggregate(ctx context.Context, query dataset.Query) dataset.Result
}

type geocoder interface {
	Lookup(ctx context.Context, address string) geocode.Coordinates
}

// Handler binds the stores, the token service and the aggregator to routes.
type Handler struct {
	users      userStore
	chat       chatStore
	favorites  favoriteStore
	reviews    reviewStore
	tokens     *auth.TokenManager
	resolver   *auth.Resolver
	aggregator schoolAggregator
	geocoder   geocoder
	cache      cache.Store
	pool       *pgxpool.Pool

	accessTTL  time.Duration
	refreshTTL time.Duration
	production bool

	publicLimiter *httpmiddleware.RateLimiter
	authLimiter   *httpmiddleware.RateLimiter
}

// NewRouter wires repositories, services and middleware into the API handler.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client) http.Handler {
	users := repo.NewUsers(pool)

	var store cache.Store = cache.NewMemory(cache.DefaultTTL)
	if redisClient != nil {
		store = cache.NewRedis(redisClient, cache.DefaultTTL)
		log.Info().Msg("response cache backed by redis")
	}

	h := &Handler{
		users:         users,
		chat:          repo.NewChat(pool),
		favorites:     repo.NewFavorites(pool),
		reviews:       repo.NewReviews(pool),
		tokens:        auth.NewTokenManager(cfg.JWTSecret),
		resolver:      auth.NewResolver(users),
		aggregator:    dataset.NewAggregator(dataset.NewClient(cfg.DataGovBaseURL), log.With().Str("component", "aggregator").Logger()),
		geocoder:      geocode.NewClient(cfg.GoogleAPIKey, ""),
		cache:         store,
		pool:          pool,
		accessTTL:     cfg.JWTAccessTTL,
		refreshTTL:    cfg.JWTRefreshTTL,
		production:    cfg.Production(),
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
		authLimiter:   httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst),
	}

	return h.routes(cfg)
}

func (h *Handler) routes(cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover(h.production))
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/api", func(api chi.Router) {
		api.Group(func(public chi.Router) {
			public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

			public.Post("/signup", h.Signup)
			public.Post("/login", h.Login)
			public.Post("/logout", h.Logout)
			public.Post("/refresh", h.Refresh)

			public.Get("/schools", h.Schools)
			public.Post("/get-coordinates", h.GetCoordinates)

			public.Get("/psgchat/{school_id}", h.listChat(repo.RoomPSG, "psgchat"))
			public.Get("/apchat/{school_id}", h.listChat(repo.RoomAP, "apchat"))
			public.Get("/aschat/{school_id}", h.listChat(repo.RoomAS, "aschat"))

			public.Get("/reviews/{school_name}", h.ListReviews)
		})

		api.Group(func(private chi.Router) {
			private.Use(httpmiddleware.Auth(h.tokens, h.resolver))
			private.Use(httpmiddleware.UserRateLimit(h.authLimiter))

			// Duplicate verify routes kept for existing frontend callers.
			private.Get("/verifySession", h.VerifySession)
			private.Get("/verify-session", h.VerifySession)
			private.Post("/chat/verify-access", h.ChatVerifyAccess)

			private.Post("/psgchat/messages", h.postChat(repo.RoomPSG, "psgchat"))
			private.Post("/apchat/messages", h.postChat(repo.RoomAP, "apchat"))
			private.Post("/aschat/messages", h.postChat(repo.RoomAS, "aschat"))

			private.Post("/addToFav", h.AddToFav)
			private.Get("/fetchFav", h.FetchFav)
			private.Post("/reviews", h.CreateReview)
		})
	})

	return r
}

// Health answers liveness probes.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready answers readiness probes by pinging the database.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}
	if err := h.pool.Ping(r.Context()); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "Database unavailable", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

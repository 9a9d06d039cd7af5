package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/metrics"
	"github.com/aussiebroadwan/tripplan/internal/planner/service"
	"github.com/aussiebroadwan/tripplan/internal/planner/store"
	"github.com/aussiebroadwan/tripplan/pkg/httpx"
	"github.com/aussiebroadwan/tripplan/pkg/jwtx"
	"github.com/aussiebroadwan/tripplan/pkg/slogx"

	_ "github.com/aussiebroadwan/tripplan/api/planner" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// apiPrefix is the root the web client calls. Every route is also served
// without it.
const apiPrefix = "/api"

// Limits groups the rate limit profiles used by the router.
type Limits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
}

// DefaultLimits returns the package profiles, env overrides included.
func DefaultLimits() Limits {
	return Limits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
	}
}

// LimiterFactory builds the limiter for one route. name is unique per route
// so shared backends keep separate counters.
type LimiterFactory func(name string, cfg httpx.RateLimitConfig) httpx.Limiter

func memoryLimiter(_ string, cfg httpx.RateLimitConfig) httpx.Limiter {
	return httpx.NewMemoryLimiter(cfg)
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	metrics      *metrics.Metrics

	AuthService    *service.AuthService
	PlanService    *service.PlanService
	HistoryService *service.HistoryService

	// Limits and NewLimiter are read by ApplyRoutes.
	Limits     Limits
	NewLimiter LimiterFactory

	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      m,
		logger:       logger,
		Limits:       DefaultLimits(),
		NewLimiter:   memoryLimiter,
	}
}

func (r *Router) ApplyRoutes() {
	// Metrics must sit closest to the mux so it sees the matched pattern.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
		httpx.CORS(r.CORSOrigins...),
		r.metrics.Middleware,
	}

	r.registerAuth()
	r.registerPlans()
	r.registerHistory()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Travel Planner API
//	@version		0.1.0
//	@description	OTP-verified accounts, AI generated day-by-day itineraries and saved plan history.
//	@description
//	@description				Session tokens are EdDSA signed JWTs valid for 30 days and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tripplan
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h at path and at the same path under apiPrefix.
func (r *Router) handle(method, path string, h http.Handler) {
	r.Mux.Handle(method+" "+path, h)
	r.Mux.Handle(method+" "+apiPrefix+path, h)
}

func (r *Router) byIP(name string, cfg httpx.RateLimitConfig) httpx.Middleware {
	return httpx.RateLimitMiddleware(r.NewLimiter(name, cfg), cfg, httpx.IPKeyExtractor)
}

func (r *Router) byUser(name string, cfg httpx.RateLimitConfig) httpx.Middleware {
	return httpx.RateLimitMiddleware(r.NewLimiter(name, cfg), cfg, httpx.CompositeKeyExtractor(":",
		httpx.UserIDKeyExtractor,
		httpx.IPKeyExtractor,
	))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Every auth endpoint either sends mail or checks a secret, so all are strict by IP.
	routes := []struct {
		path string
		fn   http.HandlerFunc
	}{
		{"/auth/send-otp", h.HandleSendOTP},
		{"/auth/register", h.HandleRegister},
		{"/auth/login", h.HandleLogin},
		{"/auth/verify-email-exists", h.HandleVerifyEmailExists},
		{"/auth/verify-forgot-password-otp", h.HandleVerifyForgotPasswordOTP},
		{"/auth/reset-password", h.HandleResetPassword},
	}
	for _, rt := range routes {
		r.handle(http.MethodPost, rt.path, httpx.Chain(rt.fn,
			r.byIP(rt.path, r.Limits.Strict),
		))
	}
}

func (r *Router) registerPlans() {
	h := &PlanHandler{PlanService: r.PlanService}

	// Anonymous callers are allowed; signed-in plans are saved to history.
	r.handle(http.MethodPost, "/plan", httpx.Chain(h,
		httpx.OptionalAuthn(r.verifier),
		r.byUser("/plan", r.Limits.Moderate),
	))
}

func (r *Router) registerHistory() {
	h := &HistoryHandler{HistoryService: r.HistoryService}

	secured := func(name string, fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			r.byUser(name, r.Limits.Lenient),
		)
	}

	r.handle(http.MethodGet, "/history", secured("history:list", h.HandleList))
	r.handle(http.MethodPost, "/history/save", secured("history:save", h.HandleSave))
	r.handle(http.MethodPatch, "/history/{id}", secured("history:patch", h.HandlePatch))
	r.handle(http.MethodDelete, "/history/{id}", secured("history:delete", h.HandleDelete))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			r.byIP("livez", r.Limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			r.byIP("readyz", r.Limits.Lenient),
		),
	)
	r.Mux.Handle("GET "+apiPrefix+"/health",
		httpx.Chain(DatabaseHealthHandler(r.store),
			r.byIP("health", r.Limits.Lenient),
		),
	)

	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			r.byIP("jwks", r.Limits.Lenient),
		),
	)

	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}

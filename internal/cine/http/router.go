package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/service"
	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/store"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/httpx"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/jwtx"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AccountService   *service.AccountService
	FavoritesService *service.FavoritesService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerFavorites()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	// POST /signup - strict rate limit by IP (account creation)
	signupHandler := &SignupHandler{AccountService: r.AccountService}
	r.Mux.Handle("POST /signup",
		httpx.Chain(signupHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /signin - strict rate limit by IP (brute force prevention)
	signinHandler := &SigninHandler{AccountService: r.AccountService}
	r.Mux.Handle("POST /signin",
		httpx.Chain(signinHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// PUT /update-password - moderate rate limit by user
	passwordHandler := &UpdatePasswordHandler{AccountService: r.AccountService}
	r.Mux.Handle("PUT /update-password",
		httpx.Chain(passwordHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /info - lenient rate limit by user
	infoHandler := &InfoHandler{AccountService: r.AccountService}
	r.Mux.Handle("GET /info",
		httpx.Chain(infoHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerFavorites() {
	h := &FavoritesHandler{FavoritesService: r.FavoritesService}

	// GET /favorites - lenient rate limit by user
	r.Mux.Handle("GET /favorites",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// POST /favorites - moderate rate limit by user
	r.Mux.Handle("POST /favorites",
		httpx.Chain(http.HandlerFunc(h.HandleAdd),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// DELETE /favorites/{favoriteId} - moderate rate limit by user
	r.Mux.Handle("DELETE /favorites/{favoriteId}",
		httpx.Chain(http.HandlerFunc(h.HandleRemove),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// GET /jwks.json - public endpoint with high limit
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

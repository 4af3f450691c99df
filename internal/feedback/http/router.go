package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/truefeedback/truefeedback/internal/feedback/service"
	"github.com/truefeedback/truefeedback/internal/feedback/store"
	"github.com/truefeedback/truefeedback/pkg/httpx"
	"github.com/truefeedback/truefeedback/pkg/jwtx"
	"github.com/truefeedback/truefeedback/pkg/slogx"

	_ "github.com/truefeedback/truefeedback/api/feedback" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
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
	cookieSecure bool

	store          store.Store
	AccountService *service.AccountService
	SessionService *service.SessionService
	MessageService *service.MessageService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	cookieSecure bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		cookieSecure: cookieSecure,
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccount()
	r.registerMessages()
	r.registerPages()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			True Feedback API
//	@version		0.1.0
//	@description	Anonymous feedback service: registered accounts receive messages from
//	@description	unauthenticated senders via a shareable link, toggle whether they accept
//	@description	messages, and manage received messages from a dashboard.
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
//	@description				Session token. Format: "Bearer {token}". Browser clients send the same token via an HttpOnly cookie.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccount() {
	r.Mux.Handle("POST /api/sign-up", &SignUpHandler{AccountService: r.AccountService})
	r.Mux.Handle("POST /api/verify-code", &VerifyCodeHandler{AccountService: r.AccountService})
	r.Mux.Handle("POST /api/sign-in", &SignInHandler{
		SessionService: r.SessionService,
		CookieSecure:   r.cookieSecure,
	})
	r.Mux.Handle("POST /api/sign-out", &SignOutHandler{CookieSecure: r.cookieSecure})
	r.Mux.Handle("GET /api/check-username-unique", &CheckUsernameHandler{AccountService: r.AccountService})
}

func (r *Router) registerMessages() {
	authn := httpx.AuthnMiddleware(r.verifier, SessionCookieName)

	accept := &AcceptMessagesHandler{
		AccountService: r.AccountService,
		MessageService: r.MessageService,
	}
	r.Mux.Handle("GET /api/accept-messages",
		httpx.Chain(http.HandlerFunc(accept.HandleGet), authn))
	r.Mux.Handle("POST /api/accept-messages",
		httpx.Chain(http.HandlerFunc(accept.HandlePost), authn))

	messages := &MessagesHandler{MessageService: r.MessageService}
	r.Mux.Handle("GET /api/get-messages",
		httpx.Chain(http.HandlerFunc(messages.HandleList), authn))
	r.Mux.Handle("DELETE /api/delete-message/{id}",
		httpx.Chain(http.HandlerFunc(messages.HandleDelete), authn))

	// Anonymous submission endpoint: deliberately unauthenticated.
	r.Mux.Handle("POST /api/send-message", &SendMessageHandler{MessageService: r.MessageService})
}

func (r *Router) registerPages() {
	gate := &AccessGate{Verifier: r.verifier}

	r.Mux.Handle("GET /{$}", gate.Wrap(landingPage()))
	r.Mux.Handle("GET /sign-in", gate.Wrap(signInPage()))
	r.Mux.Handle("GET /sign-up", gate.Wrap(signUpPage()))
	r.Mux.Handle("GET /verify/{username}", gate.Wrap(verifyPage()))
	r.Mux.Handle("GET /dashboard", gate.Wrap(dashboardPage()))
	r.Mux.Handle("GET /dashboard/", gate.Wrap(dashboardPage()))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
}

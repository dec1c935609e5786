package adapthttp

import (
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"weightlog/internal/app"
)

// localUser is the account every request acts as when auth is disabled.
const localUser = "local@localhost"

// Services bundles the application services the HTTP adapter drives.
type Services struct {
	Auth     *app.AuthService
	Users    *app.UserService
	Weight   *app.WeightService
	Profile  *app.ProfileService
	Goals    *app.GoalService
	Photos   *app.PhotoService
	Progress *app.ProgressService
	Charts   *app.ChartsService
}

// OIDCConfig holds the SSO provider. SSO routes answer 404 unless Enabled.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc            Services
	log            *zap.Logger
	webDir         string
	oidcConfig     OIDCConfig
	disableAuth    bool
	forwardAuth    bool
	maxUploadBytes int64
	loginLimit     *ipLimiter
	uploadLimit    *ipLimiter
}

// New creates a Server wired to the given application services.
func New(svc Services, log *zap.Logger, webDir string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		svc:            svc,
		log:            log,
		webDir:         webDir,
		maxUploadBytes: app.DefaultMaxPhotoBytes,
		loginLimit:     newIPLimiter(10),
		uploadLimit:    newIPLimiter(30),
	}
}

// WithOIDC enables SSO login through the given provider.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithUploadRate sets how many photo uploads one client IP may make per
// minute.
func (s *Server) WithUploadRate(perMinute int) *Server {
	s.uploadLimit = newIPLimiter(perMinute)
	return s
}

// WithMaxUploadBytes bounds the size of a photo upload request.
func (s *Server) WithMaxUploadBytes(n int64) *Server {
	if n > 0 {
		s.maxUploadBytes = n
	}
	return s
}

// WithForwardAuth trusts the Remote-User header set by an authenticating
// reverse proxy such as Authelia. Only enable it when the proxy is the sole
// way to reach the server.
func (s *Server) WithForwardAuth() *Server {
	s.forwardAuth = true
	return s
}

// WithoutAuth disables authentication; every request acts as a single local
// user. Used by tests and single-user installs.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("GET /config", s.handleConfig)

	api.Handle("POST /auth/login", s.rateLimited(s.loginLimit, http.HandlerFunc(s.handleLogin)))
	api.HandleFunc("POST /auth/logout", s.handleLogout)
	api.HandleFunc("POST /auth/setup", s.handleSetupUser)
	api.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)
	api.HandleFunc("POST /users", s.handleRegister)

	protected := http.NewServeMux()
	protected.HandleFunc("GET /users/me", s.handleUserOverview)

	protected.HandleFunc("GET /weight", s.handleWeightList)
	protected.HandleFunc("POST /weight", s.handleWeightCreate)
	protected.HandleFunc("GET /weight/recent", s.handleWeightRecent)
	protected.HandleFunc("POST /weight/undo-last", s.handleWeightUndoLast)

	protected.HandleFunc("GET /profile", s.handleProfileGet)
	protected.HandleFunc("PUT /profile", s.handleProfilePut)

	protected.HandleFunc("GET /goals", s.handleGoalList)
	protected.HandleFunc("POST /goals", s.handleGoalCreate)

	protected.HandleFunc("GET /photos", s.handlePhotoList)
	protected.Handle("POST /photos", s.rateLimited(s.uploadLimit, http.HandlerFunc(s.handlePhotoUpload)))
	protected.HandleFunc("DELETE /photos/{id}", s.handlePhotoDelete)
	protected.HandleFunc("GET /photos/gallery", s.handlePhotoGallery)
	protected.HandleFunc("GET /photos/compare", s.handlePhotoCompare)

	protected.HandleFunc("GET /progress", s.handleProgress)
	protected.HandleFunc("GET /charts/daily", s.handleChartsDaily)

	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("GET "+app.UploadURLPrefix+"{filename}", s.authMiddleware(http.HandlerFunc(s.handleUploadFile)))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}

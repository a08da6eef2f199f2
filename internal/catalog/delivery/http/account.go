package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tair/catalog-mvc/pkg/auth"
	"github.com/tair/catalog-mvc/pkg/logger"
)

// AccountHandler signs users in and out with a session cookie
type AccountHandler struct {
	users        *auth.UserStore
	tokens       *auth.TokenManager
	renderer     *Renderer
	limiter      *RateLimiter
	secureCookie bool
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(users *auth.UserStore, tokens *auth.TokenManager, renderer *Renderer, limiter *RateLimiter, secureCookie bool) *AccountHandler {
	return &AccountHandler{
		users:        users,
		tokens:       tokens,
		renderer:     renderer,
		limiter:      limiter,
		secureCookie: secureCookie,
	}
}

func (h *AccountHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(loginPath, h.LoginPage).Methods(http.MethodGet)
	router.HandleFunc(loginPath, h.limiter.Middleware(h.Login)).Methods(http.MethodPost)
	router.HandleFunc("/account/logout", h.Logout).Methods(http.MethodPost)
}

// LoginPage handles GET /account/login
func (h *AccountHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, Page{ReturnURL: safeReturnURL(r.URL.Query().Get("returnUrl"))})
}

// Login handles POST /account/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, Page{Message: "The form could not be read."})
		return
	}

	username := strings.TrimSpace(r.PostForm.Get("username"))
	returnURL := safeReturnURL(r.PostForm.Get("returnUrl"))

	user, err := h.users.Authenticate(username, r.PostForm.Get("password"))
	if err != nil {
		logger.Warn(r.Context()).Str("username", username).Msg("Login failed")
		h.render(w, r, http.StatusUnauthorized, Page{
			ReturnURL: returnURL,
			Message:   "Invalid username or password.",
		})
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to generate token")
		h.render(w, r, http.StatusInternalServerError, Page{Message: "Login is unavailable right now."})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	logger.Info(r.Context()).
		Uint("user_id", user.ID).
		Str("username", user.Username).
		Str("role", user.Role).
		Msg("User logged in")
	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

// Logout handles POST /account/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, productsPath, http.StatusSeeOther)
}

func (h *AccountHandler) render(w http.ResponseWriter, r *http.Request, status int, page Page) {
	page.User = ClaimsFromContext(r.Context())
	if err := h.renderer.Render(w, status, viewLogin, page); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to render login page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// safeReturnURL only keeps local paths
func safeReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return productsPath
	}
	return raw
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/catalog"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/content"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/gateway"
)

type AdminHandler struct {
	Gateway      *gateway.Client
	Catalog      *catalog.Store
	Content      *content.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	Validate     *validator.Validate
}

func (h *AdminHandler) session(r *http.Request) *sessions.Session {
	session, _ := h.SessionStore.Get(r, "admin-session")
	return session
}

func (h *AdminHandler) isAuthenticated(r *http.Request) bool {
	session := h.session(r)
	token, _ := session.Values["access_token"].(string)
	return token != ""
}

// Dashboard serves /admin: the login form without a session, the console
// dashboard with one.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !h.isAuthenticated(r) {
		h.renderLogin(w, r, "")
		return
	}

	tmpl := h.Templates.Get("admin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session := h.session(r)
	data := map[string]interface{}{
		"ProductCount": h.Catalog.Count(),
		"FreshCount":   h.Catalog.FreshCount(),
		"Flashes":      GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) renderLogin(w http.ResponseWriter, r *http.Request, errMsg string) {
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Error":     errMsg,
		"Email":     r.FormValue("email"),
	}
	tmpl.Execute(w, data)
}

// LoginPost exchanges the submitted credentials for a gateway session.
// Auth failures surface inline on the login form.
func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	gwSession, err := h.Gateway.SignIn(r.Context(), email, password)
	if err != nil {
		slog.Info("Admin login failed", "email", email, "error", err)
		h.renderLogin(w, r, "Invalid email or password")
		return
	}

	session := h.session(r)
	session.Values["access_token"] = gwSession.AccessToken
	session.Options.Path = "/"
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome back!"})
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Admin login successful", "email", email)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	if token, _ := session.Values["access_token"].(string); token != "" {
		if err := h.Gateway.SignOut(r.Context(), token); err != nil {
			slog.Warn("Gateway sign-out failed", "error", err)
		}
	}
	delete(session.Values, "access_token")
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AuthMiddleware gates the console routes on session presence.
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.isAuthenticated(r) {
			slog.Info("Unauthenticated admin request", "path", r.URL.Path)
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/catalog"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/content"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/gateway"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/models"
)

type HomeHandler struct {
	Catalog      *catalog.Store
	Content      *content.Store
	Gateway      *gateway.Client
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Validate     *validator.Validate
}

// Index renders the public storefront. The q and category query parameters
// drive the catalog search and filter; only visible products are shown.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	term := r.URL.Query().Get("q")
	activeCategory := r.URL.Query().Get("category")
	if activeCategory == "" {
		activeCategory = catalog.AllCategories
	}

	products := catalog.Filter(h.Catalog.Products(), term, activeCategory, true)
	settings := h.Content.Settings()
	pageContent := h.Content.Content()

	publicSession, _ := h.SessionStore.Get(r, "public-session")
	dismissed, _ := publicSession.Values["banner_dismissed"].(bool)
	bannerVisible := !dismissed && pageContent.AnnouncementText != ""

	// Enquiring about a product prefills the contact message.
	contactMessage := ""
	if raw := r.URL.Query().Get("enquire"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			if p, ok := h.Catalog.Get(id); ok {
				contactMessage = fmt.Sprintf("I'm interested in the %s. Is it available?", p.Name)
			}
		}
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Settings":       settings,
		"Content":        pageContent,
		"Products":       products,
		"Categories":     append([]string{catalog.AllCategories}, settings.Categories...),
		"SearchTerm":     term,
		"ActiveCategory": activeCategory,
		"BannerVisible":  bannerVisible,
		"ContactMessage": contactMessage,
		"Flashes":        GetFlash(publicSession),
		"CsrfField":      csrf.TemplateField(r),
	}
	publicSession.Save(r, w)
	tmpl.Execute(w, data)
}

// DismissBanner records the per-browser-session banner dismissal.
func (h *HomeHandler) DismissBanner(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	publicSession.Values["banner_dismissed"] = true
	publicSession.Options.MaxAge = 0 // session cookie, cleared when the browser session ends
	publicSession.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SubmitContact writes one contact submission to the gateway. Submissions
// are never read back by this application.
func (h *HomeHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	defer publicSession.Save(r, w)

	submission := models.ContactSubmission{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}

	if err := h.Validate.Struct(submission); err != nil {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Please fill in your name, a valid email and a message."})
		http.Redirect(w, r, "/#contact", http.StatusSeeOther)
		return
	}

	if err := h.Gateway.Insert(r.Context(), "contact_submissions", submission, nil); err != nil {
		slog.Error("Failed to store contact submission", "error", err)
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Something went wrong sending your message. Please try again later."})
		http.Redirect(w, r, "/#contact", http.StatusSeeOther)
		return
	}

	publicSession.AddFlash(FlashMessage{Type: "success", Message: "Thanks for your message! We'll be in touch soon."})
	http.Redirect(w, r, "/#contact", http.StatusSeeOther)
}

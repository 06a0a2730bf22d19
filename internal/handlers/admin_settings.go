package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/models"
)

// SettingsForm renders the site settings editor.
func (h *AdminHandler) SettingsForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_settings.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session := h.session(r)
	data := map[string]interface{}{
		"Settings":  h.Content.Settings(),
		"Flashes":   GetFlash(session),
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// updateImageSetting covers the logo and background forms, which accept
// either a file upload or a pasted URL.
func (h *AdminHandler) updateImageSetting(w http.ResponseWriter, r *http.Request, label string, set func(context.Context, string) error) {
	session := h.session(r)
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}

	newURL := r.FormValue("url")
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		uploaded, err := uploadImage(r.Context(), h.Gateway, header, file)
		if err != nil {
			slog.Error("Settings image upload failed", "setting", label, "error", err)
			session.AddFlash(FlashMessage{Type: "error", Message: "Failed to upload image."})
			http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
			return
		}
		newURL = uploaded
	}

	if newURL == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Choose a file or paste an image URL."})
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}

	if err := set(r.Context(), newURL); err != nil {
		slog.Error("Failed to save setting", "setting", label, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to save " + label + "."})
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Saved " + label + "."})
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

func (h *AdminHandler) UpdateLogo(w http.ResponseWriter, r *http.Request) {
	h.updateImageSetting(w, r, "logo", h.Content.SetLogoURL)
}

func (h *AdminHandler) UpdateBackground(w http.ResponseWriter, r *http.Request) {
	h.updateImageSetting(w, r, "background", h.Content.SetBackgroundURL)
}

func (h *AdminHandler) UpdateSocialLinks(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	defer session.Save(r, w)

	links := models.SocialLinks{
		Facebook:  r.FormValue("facebook"),
		Instagram: r.FormValue("instagram"),
	}
	if err := h.Content.SetSocialLinks(r.Context(), links); err != nil {
		slog.Error("Failed to save social links", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to save social links."})
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}
	session.AddFlash(FlashMessage{Type: "success", Message: "Social links saved."})
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

// UpdateContactInfo persists the ABN and phone number, each as its own
// field write.
func (h *AdminHandler) UpdateContactInfo(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	defer session.Save(r, w)

	settings := h.Content.Settings()
	failed := false
	if abn := r.FormValue("abn"); abn != settings.ABN {
		if err := h.Content.SetABN(r.Context(), abn); err != nil {
			slog.Error("Failed to save ABN", "error", err)
			failed = true
		}
	}
	if phone := r.FormValue("phone_number"); phone != settings.PhoneNumber {
		if err := h.Content.SetPhoneNumber(r.Context(), phone); err != nil {
			slog.Error("Failed to save phone number", "error", err)
			failed = true
		}
	}

	if failed {
		session.AddFlash(FlashMessage{Type: "error", Message: "Some contact details could not be saved."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Contact details saved."})
	}
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

// UpdateHours replaces the whole opening-hours schedule from the submitted
// rows. Row count and day order come from the current schedule.
func (h *AdminHandler) UpdateHours(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	defer session.Save(r, w)

	current := h.Content.Settings().OpeningHours
	hours := make([]models.OpeningHour, 0, len(current))
	for i, hour := range current {
		t := r.FormValue("time_" + strconv.Itoa(i))
		if t == "" {
			t = hour.Time
		}
		hours = append(hours, models.OpeningHour{Day: hour.Day, Time: t})
	}

	if err := h.Content.SetOpeningHours(r.Context(), hours); err != nil {
		slog.Error("Failed to save opening hours", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to save opening hours."})
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}
	session.AddFlash(FlashMessage{Type: "success", Message: "Opening hours saved."})
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

func (h *AdminHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	defer session.Save(r, w)

	name := r.FormValue("name")
	if err := h.Content.AddCategory(r.Context(), name); err != nil {
		slog.Error("Failed to add category", "name", name, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to add category."})
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}
	session.AddFlash(FlashMessage{Type: "success", Message: "Category added."})
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

func (h *AdminHandler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	defer session.Save(r, w)

	name := r.FormValue("name")
	if err := h.Content.RemoveCategory(r.Context(), name); err != nil {
		slog.Error("Failed to remove category", "name", name, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to remove category."})
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}
	session.AddFlash(FlashMessage{Type: "success", Message: "Category removed."})
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

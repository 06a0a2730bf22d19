package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/content"
)

// HomepageForm renders the homepage content editor.
func (h *AdminHandler) HomepageForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_homepage.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session := h.session(r)
	data := map[string]interface{}{
		"Content":   h.Content.Content(),
		"Flashes":   GetFlash(session),
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateHomepage persists every changed text field of the submitted form,
// each as its own single-field gateway write. Fields that did not change
// cost no round trip; a failure on one field does not stop the others.
func (h *AdminHandler) UpdateHomepage(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	defer session.Save(r, w)

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form submission."})
		http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
		return
	}

	var failed []string
	updated := 0
	for field, values := range r.PostForm {
		if !content.IsContentField(field) || len(values) == 0 {
			continue
		}
		current, _ := h.Content.ContentFieldValue(field)
		if values[0] == current {
			continue
		}
		if err := h.Content.SetContentField(r.Context(), field, values[0]); err != nil {
			slog.Error("Failed to update homepage content field", "field", field, "error", err)
			failed = append(failed, field)
			continue
		}
		updated++
	}

	switch {
	case len(failed) > 0:
		session.AddFlash(FlashMessage{Type: "error", Message: "Some changes could not be saved: " + strings.Join(failed, ", ")})
	case updated > 0:
		session.AddFlash(FlashMessage{Type: "success", Message: "Homepage content saved."})
	default:
		session.AddFlash(FlashMessage{Type: "success", Message: "No changes to save."})
	}
	http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
}

// UploadHomepageImage handles image uploads for the about section and the
// two gateway cards: upload first, link the public URL only on success.
func (h *AdminHandler) UploadHomepageImage(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
		return
	}

	field := r.FormValue("field")
	if !content.IsContentField(field) || !strings.HasSuffix(field, "_image_url") {
		session.AddFlash(FlashMessage{Type: "error", Message: "Unknown image field."})
		http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "An image file is required."})
		http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
		return
	}
	defer file.Close()

	imageURL, err := uploadImage(r.Context(), h.Gateway, header, file)
	if err != nil {
		slog.Error("Homepage image upload failed", "field", field, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to upload image."})
		http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
		return
	}

	if err := h.Content.SetContentField(r.Context(), field, imageURL); err != nil {
		slog.Error("Failed to link uploaded image", "field", field, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Image uploaded but could not be saved."})
		http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Image updated."})
	http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
}

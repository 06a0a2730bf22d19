package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/catalog"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/models"
)

// Products renders the product management view: the add form plus the full
// list. The admin list goes through the same filter as the public site but
// sees hidden products too.
func (h *AdminHandler) Products(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	activeCategory := r.URL.Query().Get("category")
	if activeCategory == "" {
		activeCategory = catalog.AllCategories
	}
	products := catalog.Filter(h.Catalog.Products(), term, activeCategory, false)
	settings := h.Content.Settings()

	tmpl := h.Templates.Get("admin_products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session := h.session(r)
	data := map[string]interface{}{
		"Products":       products,
		"Categories":     settings.Categories,
		"FilterOptions":  append([]string{catalog.AllCategories}, settings.Categories...),
		"SearchTerm":     term,
		"ActiveCategory": activeCategory,
		"Flashes":        GetFlash(session),
		"CsrfField":      csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// CreateProduct handles the add-product form: validate, upload the image,
// then insert. Validation failures stop the flow before any network call;
// an upload failure stops it before the insert.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	draft := models.ProductDraft{
		Name:        r.FormValue("name"),
		Price:       r.FormValue("price"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		IsFresh:     r.FormValue("is_fresh") != "",
		IsVisible:   r.FormValue("is_visible") != "",
	}

	if err := h.Validate.StructExcept(draft, "ImageURL"); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Name, price and category are required."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Product image is required."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}
	defer file.Close()

	imageURL, err := uploadImage(r.Context(), h.Gateway, header, file)
	if err != nil {
		slog.Error("Product image upload failed", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to upload image."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}
	draft.ImageURL = imageURL

	if _, err := h.Catalog.Add(r.Context(), draft); err != nil {
		slog.Error("Failed to add product", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving product."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product added successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// UpdateProduct replaces all editable fields of one product. A new image is
// optional; without one the existing image reference is kept.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid product ID."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	draft := models.ProductDraft{
		Name:        r.FormValue("name"),
		Price:       r.FormValue("price"),
		ImageURL:    r.FormValue("image_url"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		IsFresh:     r.FormValue("is_fresh") != "",
		OnOrder:     r.FormValue("on_order") != "",
		OutOfStock:  r.FormValue("out_of_stock") != "",
		IsVisible:   r.FormValue("is_visible") != "",
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err := uploadImage(r.Context(), h.Gateway, header, file)
		if err != nil {
			slog.Error("Product image upload failed", "error", err)
			session.AddFlash(FlashMessage{Type: "error", Message: "Failed to upload image."})
			http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
			return
		}
		draft.ImageURL = imageURL
	}

	if err := h.Validate.Struct(draft); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Name, price and category are required."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if _, err := h.Catalog.Update(r.Context(), id, draft); err != nil {
		slog.Error("Failed to update product", "id", id, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating product."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product updated successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid product ID."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if err := h.Catalog.Delete(r.Context(), id); err != nil {
		slog.Error("Failed to delete product", "id", id, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting product."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product deleted."})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid product ID."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if _, err := h.Catalog.ToggleVisibility(r.Context(), id); err != nil {
		slog.Error("Failed to toggle product visibility", "id", id, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating product visibility."})
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// ReorderForm renders the manual ordering view: every product with an
// editable position number.
func (h *AdminHandler) ReorderForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_reorder.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session := h.session(r)
	data := map[string]interface{}{
		"Products":  h.Catalog.Products(),
		"Flashes":   GetFlash(session),
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// SaveReorder reads the submitted position numbers, sorts the catalog by
// them (stable, so ties keep their current relative order) and persists the
// new ranks.
func (h *AdminHandler) SaveReorder(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	defer session.Save(r, w)

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form submission."})
		http.Redirect(w, r, "/admin/products/reorder", http.StatusSeeOther)
		return
	}

	products := h.Catalog.Products()
	type entry struct {
		id  int
		pos int
	}
	entries := make([]entry, 0, len(products))
	for i, p := range products {
		pos := i + 1
		if raw := r.FormValue("pos_" + strconv.Itoa(p.ID)); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				pos = parsed
			}
		}
		entries = append(entries, entry{id: p.ID, pos: pos})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].pos < entries[j].pos })

	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}

	if err := h.Catalog.Reorder(r.Context(), ids); err != nil {
		slog.Error("Failed to reorder products", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving the new order."})
		http.Redirect(w, r, "/admin/products/reorder", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product order saved."})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

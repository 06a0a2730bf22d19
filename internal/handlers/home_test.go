package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestSubmitContactRejectsInvalidForm(t *testing.T) {
	h := &HomeHandler{
		SessionStore: newSessionStore(),
		Validate:     validator.New(),
	}

	tests := []struct {
		name string
		form url.Values
	}{
		{"missing everything", url.Values{}},
		{"bad email", url.Values{"name": {"Pat"}, "email": {"not-an-email"}, "message": {"hello"}}},
		{"missing message", url.Values{"name": {"Pat"}, "email": {"pat@example.com"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.SubmitContact(rec, postForm("/contact", tt.form))

			// Invalid submissions bounce back to the contact section
			// without touching the gateway (the nil client would panic).
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/#contact", rec.Header().Get("Location"))
		})
	}
}

func TestDismissBannerSetsSessionFlag(t *testing.T) {
	store := newSessionStore()
	h := &HomeHandler{SessionStore: store}

	rec := httptest.NewRecorder()
	h.DismissBanner(rec, httptest.NewRequest(http.MethodPost, "/banner/dismiss", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// The flag must be readable on a follow-up request.
	followUp := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		followUp.AddCookie(c)
	}
	session, _ := store.Get(followUp, "public-session")
	dismissed, _ := session.Values["banner_dismissed"].(bool)
	assert.True(t, dismissed)
}

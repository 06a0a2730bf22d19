// Package content mirrors the two singleton gateway rows - site-wide
// settings and homepage editorial content - and keeps the gateway in sync
// field by field. Every setter is confirm-then-apply: the gateway write
// happens first and local state changes only on success, so the mirror can
// never show a value that failed to persist.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/gateway"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/models"
)

const (
	settingsTable = "site_settings"
	contentTable  = "homepage_content"

	// Both tables hold exactly one logical row with this id.
	singletonID = 1
)

type Store struct {
	gw *gateway.Client

	mu       sync.RWMutex
	settings models.SiteSettings
	content  models.HomepageContent
}

// NewStore returns a store seeded with the default settings and copy; Load
// overlays whatever the gateway rows carry.
func NewStore(gw *gateway.Client) *Store {
	return &Store{
		gw:       gw,
		settings: models.DefaultSiteSettings(),
		content:  models.DefaultHomepageContent(),
	}
}

// Load fetches both singleton rows. A missing row or field keeps its
// default; a transport error leaves the store untouched and is returned for
// the caller to surface.
func (s *Store) Load(ctx context.Context) error {
	query := url.Values{"limit": []string{"1"}}
	var settingsRows []settingsRow
	if err := s.gw.Select(ctx, settingsTable, query, &settingsRows); err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	var contentRows []contentRow
	if err := s.gw.Select(ctx, contentTable, query, &contentRows); err != nil {
		return fmt.Errorf("load homepage content: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(settingsRows) > 0 {
		s.settings = settingsRows[0].resolve(models.DefaultSiteSettings())
	}
	if len(contentRows) > 0 {
		s.content = contentRows[0].resolve(models.DefaultHomepageContent())
	}
	slog.Debug("Site settings and homepage content loaded")
	return nil
}

// Settings returns a copy of the current site settings.
func (s *Store) Settings() models.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.settings
	out.Categories = append([]string(nil), s.settings.Categories...)
	out.OpeningHours = append([]models.OpeningHour(nil), s.settings.OpeningHours...)
	return out
}

// Content returns a copy of the current homepage content.
func (s *Store) Content() models.HomepageContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

// setSettingsField persists one settings column and applies the change
// locally once the gateway confirms it.
func (s *Store) setSettingsField(ctx context.Context, field string, value any, apply func(*models.SiteSettings)) error {
	patch := map[string]any{field: value}
	if err := s.gw.Update(ctx, settingsTable, singletonID, patch, nil); err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}
	s.mu.Lock()
	apply(&s.settings)
	s.mu.Unlock()
	return nil
}

func (s *Store) SetLogoURL(ctx context.Context, logoURL string) error {
	return s.setSettingsField(ctx, "logo_url", logoURL, func(st *models.SiteSettings) {
		st.LogoURL = logoURL
	})
}

func (s *Store) SetBackgroundURL(ctx context.Context, backgroundURL string) error {
	return s.setSettingsField(ctx, "background_url", backgroundURL, func(st *models.SiteSettings) {
		st.BackgroundURL = backgroundURL
	})
}

func (s *Store) SetSocialLinks(ctx context.Context, links models.SocialLinks) error {
	return s.setSettingsField(ctx, "social_links", links, func(st *models.SiteSettings) {
		st.SocialLinks = links
	})
}

func (s *Store) SetABN(ctx context.Context, abn string) error {
	return s.setSettingsField(ctx, "abn", abn, func(st *models.SiteSettings) {
		st.ABN = abn
	})
}

func (s *Store) SetPhoneNumber(ctx context.Context, phone string) error {
	return s.setSettingsField(ctx, "phone_number", phone, func(st *models.SiteSettings) {
		st.PhoneNumber = phone
	})
}

// SetOpeningHours replaces the whole weekly schedule in one write.
func (s *Store) SetOpeningHours(ctx context.Context, hours []models.OpeningHour) error {
	hours = append([]models.OpeningHour(nil), hours...)
	return s.setSettingsField(ctx, "opening_hours", hours, func(st *models.SiteSettings) {
		st.OpeningHours = hours
	})
}

// AddCategory appends a category label. Adding an existing label is a no-op
// with no gateway round trip.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("category name is required")
	}
	s.mu.RLock()
	for _, c := range s.settings.Categories {
		if c == name {
			s.mu.RUnlock()
			return nil
		}
	}
	next := append(append([]string(nil), s.settings.Categories...), name)
	s.mu.RUnlock()
	return s.setSettingsField(ctx, "categories", next, func(st *models.SiteSettings) {
		st.Categories = next
	})
}

// RemoveCategory drops a label from the set. Products already tagged with
// the label keep it; category is descriptive, not a foreign key.
func (s *Store) RemoveCategory(ctx context.Context, name string) error {
	s.mu.RLock()
	next := make([]string, 0, len(s.settings.Categories))
	for _, c := range s.settings.Categories {
		if c != name {
			next = append(next, c)
		}
	}
	s.mu.RUnlock()
	return s.setSettingsField(ctx, "categories", next, func(st *models.SiteSettings) {
		st.Categories = next
	})
}

// contentFields maps homepage content column names to their in-memory slot.
var contentFields = map[string]func(*models.HomepageContent) *string{
	"hero_title":           func(c *models.HomepageContent) *string { return &c.HeroTitle },
	"hero_subtitle":        func(c *models.HomepageContent) *string { return &c.HeroSubtitle },
	"announcement_text":    func(c *models.HomepageContent) *string { return &c.AnnouncementText },
	"about_text":           func(c *models.HomepageContent) *string { return &c.AboutText },
	"about_image_url":      func(c *models.HomepageContent) *string { return &c.AboutImageURL },
	"gateway1_image_url":   func(c *models.HomepageContent) *string { return &c.Gateway1.ImageURL },
	"gateway1_title":       func(c *models.HomepageContent) *string { return &c.Gateway1.Title },
	"gateway1_description": func(c *models.HomepageContent) *string { return &c.Gateway1.Description },
	"gateway1_button_text": func(c *models.HomepageContent) *string { return &c.Gateway1.ButtonText },
	"gateway1_button_url":  func(c *models.HomepageContent) *string { return &c.Gateway1.ButtonURL },
	"gateway2_image_url":   func(c *models.HomepageContent) *string { return &c.Gateway2.ImageURL },
	"gateway2_title":       func(c *models.HomepageContent) *string { return &c.Gateway2.Title },
	"gateway2_description": func(c *models.HomepageContent) *string { return &c.Gateway2.Description },
	"gateway2_button_text": func(c *models.HomepageContent) *string { return &c.Gateway2.ButtonText },
	"gateway2_button_url":  func(c *models.HomepageContent) *string { return &c.Gateway2.ButtonURL },
}

// IsContentField reports whether name is a settable homepage content field.
func IsContentField(name string) bool {
	_, ok := contentFields[name]
	return ok
}

// SetContentField persists one homepage content column independently of all
// others. Two edits to different fields never conflict; there is no
// atomicity across fields.
func (s *Store) SetContentField(ctx context.Context, field, value string) error {
	slot, ok := contentFields[field]
	if !ok {
		return fmt.Errorf("unknown homepage content field %q", field)
	}
	patch := map[string]string{field: value}
	if err := s.gw.Update(ctx, contentTable, singletonID, patch, nil); err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}
	s.mu.Lock()
	*slot(&s.content) = value
	s.mu.Unlock()
	return nil
}

// ContentFieldValue returns the current value of a settable content field.
func (s *Store) ContentFieldValue(field string) (string, bool) {
	slot, ok := contentFields[field]
	if !ok {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.content
	return *slot(&c), true
}

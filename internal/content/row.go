package content

import (
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/models"
)

// Wire forms of the two singleton rows. Optional columns are pointers so a
// missing field keeps its seeded default when the row is resolved.

type settingsRow struct {
	ID            int                  `json:"id,omitempty"`
	LogoURL       *string              `json:"logo_url,omitempty"`
	BackgroundURL *string              `json:"background_url,omitempty"`
	SocialLinks   *models.SocialLinks  `json:"social_links,omitempty"`
	ABN           *string              `json:"abn,omitempty"`
	PhoneNumber   *string              `json:"phone_number,omitempty"`
	Categories    []string             `json:"categories,omitempty"`
	OpeningHours  []models.OpeningHour `json:"opening_hours,omitempty"`
}

// resolve overlays the row onto the seeded defaults.
func (r settingsRow) resolve(base models.SiteSettings) models.SiteSettings {
	if r.LogoURL != nil && *r.LogoURL != "" {
		base.LogoURL = *r.LogoURL
	}
	if r.BackgroundURL != nil {
		base.BackgroundURL = *r.BackgroundURL
	}
	if r.SocialLinks != nil {
		base.SocialLinks = *r.SocialLinks
	}
	if r.ABN != nil {
		base.ABN = *r.ABN
	}
	if r.PhoneNumber != nil {
		base.PhoneNumber = *r.PhoneNumber
	}
	if len(r.Categories) > 0 {
		base.Categories = r.Categories
	}
	if len(r.OpeningHours) > 0 {
		base.OpeningHours = r.OpeningHours
	}
	return base
}

type contentRow struct {
	ID                  int     `json:"id,omitempty"`
	HeroTitle           *string `json:"hero_title,omitempty"`
	HeroSubtitle        *string `json:"hero_subtitle,omitempty"`
	AnnouncementText    *string `json:"announcement_text,omitempty"`
	AboutText           *string `json:"about_text,omitempty"`
	AboutImageURL       *string `json:"about_image_url,omitempty"`
	Gateway1ImageURL    *string `json:"gateway1_image_url,omitempty"`
	Gateway1Title       *string `json:"gateway1_title,omitempty"`
	Gateway1Description *string `json:"gateway1_description,omitempty"`
	Gateway1ButtonText  *string `json:"gateway1_button_text,omitempty"`
	Gateway1ButtonURL   *string `json:"gateway1_button_url,omitempty"`
	Gateway2ImageURL    *string `json:"gateway2_image_url,omitempty"`
	Gateway2Title       *string `json:"gateway2_title,omitempty"`
	Gateway2Description *string `json:"gateway2_description,omitempty"`
	Gateway2ButtonText  *string `json:"gateway2_button_text,omitempty"`
	Gateway2ButtonURL   *string `json:"gateway2_button_url,omitempty"`
}

func (r contentRow) resolve(base models.HomepageContent) models.HomepageContent {
	set := func(dst *string, src *string) {
		if src != nil && *src != "" {
			*dst = *src
		}
	}
	set(&base.HeroTitle, r.HeroTitle)
	set(&base.HeroSubtitle, r.HeroSubtitle)
	set(&base.AboutText, r.AboutText)
	set(&base.AboutImageURL, r.AboutImageURL)
	// An empty announcement is meaningful: it hides the banner.
	if r.AnnouncementText != nil {
		base.AnnouncementText = *r.AnnouncementText
	}
	set(&base.Gateway1.ImageURL, r.Gateway1ImageURL)
	set(&base.Gateway1.Title, r.Gateway1Title)
	set(&base.Gateway1.Description, r.Gateway1Description)
	set(&base.Gateway1.ButtonText, r.Gateway1ButtonText)
	set(&base.Gateway1.ButtonURL, r.Gateway1ButtonURL)
	set(&base.Gateway2.ImageURL, r.Gateway2ImageURL)
	set(&base.Gateway2.Title, r.Gateway2Title)
	set(&base.Gateway2.Description, r.Gateway2Description)
	set(&base.Gateway2.ButtonText, r.Gateway2ButtonText)
	set(&base.Gateway2.ButtonURL, r.Gateway2ButtonURL)
	return base
}

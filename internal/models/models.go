package models

import (
	"time"
)

// Product is one catalog item with all optional fields resolved to concrete
// values. Price is display text, not a number ("$38.50/kg", "Market price").
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	IsFresh     bool      `json:"is_fresh"`
	OnOrder     bool      `json:"on_order"`
	OutOfStock  bool      `json:"out_of_stock"`
	IsVisible   bool      `json:"is_visible"`
	SortOrder   int       `json:"sort_order"` // 0 means unranked
	CreatedAt   time.Time `json:"created_at"`
}

// ProductDraft carries the editable fields of a product for create and
// update. Name, price, category and an already-uploaded image are required.
type ProductDraft struct {
	Name        string `validate:"required"`
	Price       string `validate:"required"`
	ImageURL    string `validate:"required"`
	Category    string `validate:"required"`
	Description string
	IsFresh     bool
	OnOrder     bool
	OutOfStock  bool
	IsVisible   bool
}

// OpeningHour is one line of the weekly schedule. Time is free text;
// "Closed" is a valid value.
type OpeningHour struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

// SiteSettings is the singleton site-wide configuration row.
// BackgroundURL empty means no hero background is set.
type SiteSettings struct {
	LogoURL       string
	BackgroundURL string
	SocialLinks   SocialLinks
	ABN           string
	PhoneNumber   string
	Categories    []string
	OpeningHours  []OpeningHour
}

// GatewayCard is one of the two promotional blocks on the homepage.
type GatewayCard struct {
	ImageURL    string
	Title       string
	Description string
	ButtonText  string
	ButtonURL   string
}

// HomepageContent is the singleton editorial content row.
type HomepageContent struct {
	HeroTitle        string
	HeroSubtitle     string
	AnnouncementText string
	AboutText        string
	AboutImageURL    string
	Gateway1         GatewayCard
	Gateway2         GatewayCard
}

// ContactSubmission is a write-only record from the public contact form.
type ContactSubmission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

const DefaultLogoURL = "https://i.imgur.com/Gq6h2rQ.png"

// DefaultSiteSettings returns the seed configuration used until the gateway
// row is loaded, and as the fallback for fields the row does not carry.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		LogoURL:    DefaultLogoURL,
		Categories: []string{"Fresh Fish", "Shellfish", "Sashimi", "Platters", "Other"},
		OpeningHours: []OpeningHour{
			{Day: "Wednesday", Time: "7am - 1pm"},
			{Day: "Thursday", Time: "7am - 2pm"},
			{Day: "Friday", Time: "7am - 2:30pm"},
		},
	}
}

// DefaultHomepageContent returns the seed editorial copy.
func DefaultHomepageContent() HomepageContent {
	return HomepageContent{
		HeroTitle:        "Fresh From The Ocean",
		HeroSubtitle:     "Proudly offering the freshest, locally sourced seafood in Tasmania.",
		AnnouncementText: "Free delivery on all orders over $100 this week!",
		AboutText: "Founded in 1988, Wilson's Seafoods has been the heart of Glenorchy's " +
			"fresh fish market for over three decades. Our family-run business is built on a " +
			"simple promise: to provide our community with the freshest, highest-quality, and " +
			"sustainably sourced seafood Tasmania has to offer. We work directly with local " +
			"fishermen to bring the best of the ocean straight to your table.",
		AboutImageURL: "https://images.unsplash.com/photo-1577906161839-d4272b0755f3?q=80&w=1887&auto=format&fit=crop",
		Gateway1: GatewayCard{
			ImageURL:    "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2?q=80&w=1200&auto=format&fit=crop",
			Title:       "Public Fish Market",
			Description: "Visit our store to see the freshest Tasmanian seafood. We are open to the public.",
			ButtonText:  "View Products",
			ButtonURL:   "#products",
		},
		Gateway2: GatewayCard{
			ImageURL:    "https://images.unsplash.com/photo-1577219491135-ce391730fb2c?q=80&w=1200&auto=format&fit=crop",
			Title:       "Wholesale & Chef's Portal",
			Description: "For our restaurant, chef, and wholesale partners. Log in to your Fresho account or apply for a new trade account here.",
			ButtonText:  "Enter Portal",
			ButtonURL:   "https://www.fresho.com/",
		},
	}
}

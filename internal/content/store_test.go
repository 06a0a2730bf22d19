package content_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/content"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/devgateway"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/gateway"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/models"
)

func newTestGateway(t *testing.T) *gateway.Client {
	t.Helper()
	store, err := devgateway.NewStore(filepath.Join(t.TempDir(), "gateway.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate())

	srv := httptest.NewServer(devgateway.NewServer(store, t.TempDir()))
	t.Cleanup(srv.Close)

	return gateway.New(gateway.Config{BaseURL: srv.URL, APIKey: "test-key", Bucket: "images"})
}

// brokenGateway always fails, for verifying that local state never moves
// ahead of the backend.
func brokenGateway(t *testing.T) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return gateway.New(gateway.Config{BaseURL: srv.URL, APIKey: "test-key", Bucket: "images"})
}

func TestLoadKeepsDefaultsForEmptyRows(t *testing.T) {
	store := content.NewStore(newTestGateway(t))
	require.NoError(t, store.Load(context.Background()))

	// The dev gateway seeds singleton rows with every column unset, so the
	// defaults must survive the load.
	assert.Equal(t, models.DefaultSiteSettings(), store.Settings())
	assert.Equal(t, models.DefaultHomepageContent(), store.Content())
}

func TestSetLogoURLRoundTrip(t *testing.T) {
	gw := newTestGateway(t)
	store := content.NewStore(gw)
	ctx := context.Background()

	require.NoError(t, store.SetLogoURL(ctx, "https://cdn.example.com/logo.png"))
	assert.Equal(t, "https://cdn.example.com/logo.png", store.Settings().LogoURL)

	reloaded := content.NewStore(gw)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, "https://cdn.example.com/logo.png", reloaded.Settings().LogoURL)
}

func TestSetSocialLinksAndContactDetails(t *testing.T) {
	gw := newTestGateway(t)
	store := content.NewStore(gw)
	ctx := context.Background()

	links := models.SocialLinks{Facebook: "https://facebook.com/wilsons", Instagram: "https://instagram.com/wilsons"}
	require.NoError(t, store.SetSocialLinks(ctx, links))
	require.NoError(t, store.SetABN(ctx, "12 345 678 901"))
	require.NoError(t, store.SetPhoneNumber(ctx, "(03) 6272 1234"))

	reloaded := content.NewStore(gw)
	require.NoError(t, reloaded.Load(ctx))
	got := reloaded.Settings()
	assert.Equal(t, links, got.SocialLinks)
	assert.Equal(t, "12 345 678 901", got.ABN)
	assert.Equal(t, "(03) 6272 1234", got.PhoneNumber)
}

func TestSetOpeningHoursReplacesSchedule(t *testing.T) {
	gw := newTestGateway(t)
	store := content.NewStore(gw)
	ctx := context.Background()

	hours := []models.OpeningHour{
		{Day: "Saturday", Time: "8am - 12pm"},
		{Day: "Sunday", Time: "Closed"},
	}
	require.NoError(t, store.SetOpeningHours(ctx, hours))
	assert.Equal(t, hours, store.Settings().OpeningHours)

	reloaded := content.NewStore(gw)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, hours, reloaded.Settings().OpeningHours)
}

func TestAddCategory(t *testing.T) {
	gw := newTestGateway(t)
	store := content.NewStore(gw)
	ctx := context.Background()

	before := len(store.Settings().Categories)
	require.NoError(t, store.AddCategory(ctx, "Smoked"))
	require.NoError(t, store.AddCategory(ctx, "Smoked"), "duplicates are a silent no-op")
	assert.Len(t, store.Settings().Categories, before+1)
	assert.Contains(t, store.Settings().Categories, "Smoked")

	assert.Error(t, store.AddCategory(ctx, ""), "an empty label is rejected")
}

func TestRemoveCategory(t *testing.T) {
	gw := newTestGateway(t)
	store := content.NewStore(gw)
	ctx := context.Background()

	require.NoError(t, store.RemoveCategory(ctx, "Platters"))
	assert.NotContains(t, store.Settings().Categories, "Platters")

	reloaded := content.NewStore(gw)
	require.NoError(t, reloaded.Load(ctx))
	assert.NotContains(t, reloaded.Settings().Categories, "Platters")
}

func TestSetContentField(t *testing.T) {
	gw := newTestGateway(t)
	store := content.NewStore(gw)
	ctx := context.Background()

	require.NoError(t, store.SetContentField(ctx, "hero_title", "Straight Off The Boat"))
	assert.Equal(t, "Straight Off The Boat", store.Content().HeroTitle)

	reloaded := content.NewStore(gw)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, "Straight Off The Boat", reloaded.Content().HeroTitle)
}

func TestSetContentFieldRejectsUnknownField(t *testing.T) {
	store := content.NewStore(newTestGateway(t))
	err := store.SetContentField(context.Background(), "not_a_field", "value")
	assert.Error(t, err)
}

func TestClearedAnnouncementStaysCleared(t *testing.T) {
	gw := newTestGateway(t)
	store := content.NewStore(gw)
	ctx := context.Background()

	require.NoError(t, store.SetContentField(ctx, "announcement_text", ""))
	assert.Empty(t, store.Content().AnnouncementText)

	// An empty announcement is a deliberate value, not an unset field, so
	// the default copy must not resurface on reload.
	reloaded := content.NewStore(gw)
	require.NoError(t, reloaded.Load(ctx))
	assert.Empty(t, reloaded.Content().AnnouncementText)
}

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	store := content.NewStore(brokenGateway(t))
	ctx := context.Background()

	before := store.Settings()
	assert.Error(t, store.SetLogoURL(ctx, "https://cdn.example.com/logo.png"))
	assert.Error(t, store.AddCategory(ctx, "Smoked"))
	assert.Error(t, store.SetContentField(ctx, "hero_title", "nope"))

	assert.Equal(t, before, store.Settings())
	assert.Equal(t, models.DefaultHomepageContent(), store.Content())
}

func TestContentFieldValue(t *testing.T) {
	store := content.NewStore(newTestGateway(t))

	got, ok := store.ContentFieldValue("hero_title")
	require.True(t, ok)
	assert.Equal(t, models.DefaultHomepageContent().HeroTitle, got)

	_, ok = store.ContentFieldValue("not_a_field")
	assert.False(t, ok)
}

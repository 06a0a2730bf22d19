package devgateway_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/devgateway"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/gateway"
)

func newServer(t *testing.T) (*devgateway.Store, *httptest.Server) {
	t.Helper()
	store, err := devgateway.NewStore(filepath.Join(t.TempDir(), "gateway.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate())

	srv := httptest.NewServer(devgateway.NewServer(store, t.TempDir()))
	t.Cleanup(srv.Close)
	return store, srv
}

func TestMigrateSeedsSingletonRows(t *testing.T) {
	store, _ := newServer(t)

	var n int
	require.NoError(t, store.DB.QueryRow(`SELECT COUNT(*) FROM site_settings WHERE id = 1`).Scan(&n))
	assert.Equal(t, 1, n)
	require.NoError(t, store.DB.QueryRow(`SELECT COUNT(*) FROM homepage_content WHERE id = 1`).Scan(&n))
	assert.Equal(t, 1, n)

	// Running migrations again must be a no-op.
	require.NoError(t, store.Migrate())
}

func TestPasswordGrant(t *testing.T) {
	store, srv := newServer(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser("admin@wilsons.example", string(hashed)))

	client := gateway.New(gateway.Config{BaseURL: srv.URL, APIKey: "k", Bucket: "images"})
	ctx := context.Background()

	session, err := client.SignIn(ctx, "admin@wilsons.example", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "bearer", session.TokenType)

	require.NoError(t, client.SignOut(ctx, session.AccessToken))
}

func TestPasswordGrantRejectsBadCredentials(t *testing.T) {
	store, srv := newServer(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser("admin@wilsons.example", string(hashed)))

	client := gateway.New(gateway.Config{BaseURL: srv.URL, APIKey: "k", Bucket: "images"})
	ctx := context.Background()

	_, err = client.SignIn(ctx, "admin@wilsons.example", "wrong")
	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusBadRequest, gwErr.Status)
	assert.Equal(t, "Invalid login credentials", gwErr.Message)

	_, err = client.SignIn(ctx, "nobody@wilsons.example", "correct horse")
	assert.Error(t, err)
}

func TestStorageUploadAndFetch(t *testing.T) {
	_, srv := newServer(t)
	client := gateway.New(gateway.Config{BaseURL: srv.URL, APIKey: "k", Bucket: "images"})
	ctx := context.Background()

	payload := []byte("fake image bytes")
	require.NoError(t, client.Upload(ctx, "public/photo.jpg", "image/jpeg", payload))

	resp, err := http.Get(client.PublicURL("public/photo.jpg"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestStorageRejectsPathTraversal(t *testing.T) {
	_, srv := newServer(t)

	req, err := http.NewRequest(http.MethodPost,
		srv.URL+"/storage/v1/object/images/..%2F..%2Fescape.txt",
		bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
}

func TestRestUnknownTable(t *testing.T) {
	_, srv := newServer(t)

	resp, err := http.Get(srv.URL + "/rest/v1/secrets")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRestUpdateRequiresIDFilter(t *testing.T) {
	_, srv := newServer(t)

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/rest/v1/products",
		bytes.NewReader([]byte(`{"name":"x"}`)))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRestRejectsUnknownOrderColumn(t *testing.T) {
	_, srv := newServer(t)

	resp, err := http.Get(srv.URL + "/rest/v1/products?order=password.asc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

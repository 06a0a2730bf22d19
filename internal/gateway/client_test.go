package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	err := &Error{Status: 404, Message: "no rows returned"}
	assert.Equal(t, "gateway: 404 no rows returned", err.Error())
}

func TestObjectNamePreservesExtension(t *testing.T) {
	name := ObjectName("Fresh Salmon Photo.JPG")
	assert.True(t, strings.HasSuffix(name, ".jpg"), "extension is kept, lowercased: %s", name)
	assert.NotEqual(t, ObjectName("a.png"), ObjectName("a.png"), "names are random")

	assert.False(t, strings.Contains(ObjectName("noextension"), "."))
}

func TestPublicURL(t *testing.T) {
	c := New(Config{BaseURL: "https://gw.example.com/", APIKey: "k", Bucket: "images"})
	assert.Equal(t,
		"https://gw.example.com/storage/v1/object/public/images/public/photo.jpg",
		c.PublicURL("public/photo.jpg"))
}

func TestRequestCarriesAuthHeaders(t *testing.T) {
	var gotAPIKey, gotAuth, gotPrefer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		gotPrefer = r.Header.Get("Prefer")
		w.Write([]byte(`[{"id": 1, "name": "Oysters"}]`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "anon-key", Bucket: "images"})

	var row struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	err := c.Insert(context.Background(), "products", map[string]string{"name": "Oysters"}, &row)
	require.NoError(t, err)
	assert.Equal(t, "anon-key", gotAPIKey)
	assert.Equal(t, "Bearer anon-key", gotAuth)
	assert.Equal(t, "return=representation", gotPrefer)
	assert.Equal(t, 1, row.ID)
}

func TestWriteWithNoRowsReturns404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k", Bucket: "images"})

	var dest map[string]any
	err := c.Update(context.Background(), "products", 7, map[string]string{"name": "x"}, &dest)
	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusNotFound, gwErr.Status)
}

func TestErrorBodyParsing(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message key", `{"message":"duplicate key"}`, "duplicate key"},
		{"msg key", `{"msg":"bad request"}`, "bad request"},
		{"auth style", `{"error_description":"Invalid login credentials"}`, "Invalid login credentials"},
		{"plain text", "upstream unavailable\n", "upstream unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readErrorMessage(strings.NewReader(tt.body)))
		})
	}
}

func TestUpdateFiltersByID(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"id": 42}]`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k", Bucket: "images"})
	err := c.Update(context.Background(), "products", 42, map[string]string{"name": "x"}, nil)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "id=eq.42")
}

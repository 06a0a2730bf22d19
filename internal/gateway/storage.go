package gateway

import (
	"bytes"
	"context"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ObjectName generates a random storage object name preserving the
// extension of the original filename.
func ObjectName(original string) string {
	ext := strings.ToLower(path.Ext(original))
	return uuid.New().String() + ext
}

// Upload stores raw bytes in the client's bucket under the given object
// path. The object becomes publicly readable at PublicURL(objectPath).
func (c *Client) Upload(ctx context.Context, objectPath, contentType string, data []byte) error {
	headers := map[string]string{"Content-Type": contentType}
	resp, err := c.do(ctx, http.MethodPost, "/storage/v1/object/"+c.bucket+"/"+objectPath, nil, headers, bytes.NewReader(data))
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// PublicURL returns the stable public URL for an uploaded object.
func (c *Client) PublicURL(objectPath string) string {
	return c.baseURL + "/storage/v1/object/public/" + c.bucket + "/" + objectPath
}

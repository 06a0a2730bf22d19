package handlers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/gateway"
)

// Images wider than this are scaled down before upload.
const maxImageWidth = 1200

// uploadImage runs the two-step upload-then-link protocol: optimize the
// image, upload it under a random object name preserving the original
// extension, and return the public URL for the caller to store. If the
// upload fails no URL is returned and no field is ever written, so the
// outcome is never partial.
func uploadImage(ctx context.Context, gw *gateway.Client, header *multipart.FileHeader, file multipart.File) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))

	var payload []byte
	var contentType string
	switch ext {
	case ".png":
		img, err := png.Decode(file)
		if err != nil {
			return "", fmt.Errorf("decode png: %w", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, shrink(img)); err != nil {
			return "", fmt.Errorf("encode png: %w", err)
		}
		payload = buf.Bytes()
		contentType = "image/png"
	case ".jpg", ".jpeg":
		img, err := jpeg.Decode(file)
		if err != nil {
			return "", fmt.Errorf("decode jpeg: %w", err)
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, shrink(img), &jpeg.Options{Quality: 80}); err != nil {
			return "", fmt.Errorf("encode jpeg: %w", err)
		}
		payload = buf.Bytes()
		contentType = "image/jpeg"
	default:
		// Formats we do not re-encode are uploaded untouched.
		raw, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("read upload: %w", err)
		}
		payload = raw
		contentType = header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	objectPath := "public/" + gateway.ObjectName(header.Filename)
	if err := gw.Upload(ctx, objectPath, contentType, payload); err != nil {
		return "", err
	}
	return gw.PublicURL(objectPath), nil
}

func shrink(img image.Image) image.Image {
	if img.Bounds().Dx() <= maxImageWidth {
		return img
	}
	return resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)
}

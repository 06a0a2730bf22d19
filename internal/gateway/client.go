// Package gateway is the HTTP client for the external backend-as-a-service
// platform that owns this site's database, authentication and file storage.
// Tables are exposed under /rest/v1, email/password sessions under /auth/v1
// and object storage under /storage/v1. Every call is attempt-once: no
// retries, no backoff, no timeout beyond the HTTP client's own.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type Config struct {
	BaseURL string
	APIKey  string
	Bucket  string
}

type Client struct {
	baseURL string
	apiKey  string
	bucket  string
	http    *http.Client
}

func New(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		bucket:  cfg.Bucket,
		http:    &http.Client{},
	}
}

// Error is a non-2xx response from the gateway.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %d %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, headers map[string]string, body io.Reader) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, &Error{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	return resp, nil
}

// readErrorMessage pulls a human-readable message out of an error body,
// which may be JSON ({"message": ...} or {"error_description": ...}) or
// plain text.
func readErrorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var payload struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		switch {
		case payload.Message != "":
			return payload.Message
		case payload.Msg != "":
			return payload.Msg
		case payload.ErrorDescription != "":
			return payload.ErrorDescription
		}
	}
	return strings.TrimSpace(string(raw))
}

// Select reads rows from a table. Query carries PostgREST-style parameters
// (order, limit). The response array is decoded into dest.
func (c *Client) Select(ctx context.Context, table string, query url.Values, dest any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("select", "*")
	resp, err := c.do(ctx, http.MethodGet, "/rest/v1/"+table, query, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(dest)
}

// Insert writes one record and decodes the canonical row the gateway
// returns into dest. Pass a nil dest to discard the representation.
func (c *Client) Insert(ctx context.Context, table string, record any, dest any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	headers := map[string]string{
		"Content-Type": "application/json",
		"Prefer":       "return=representation",
	}
	resp, err := c.do(ctx, http.MethodPost, "/rest/v1/"+table, nil, headers, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeFirstRow(resp.Body, dest)
}

// Update patches the row with the given id using the fields present in
// record (a struct with omitempty tags or a map) and decodes the canonical
// row into dest.
func (c *Client) Update(ctx context.Context, table string, id int, record any, dest any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	query := url.Values{"id": []string{"eq." + strconv.Itoa(id)}}
	headers := map[string]string{
		"Content-Type": "application/json",
		"Prefer":       "return=representation",
	}
	resp, err := c.do(ctx, http.MethodPatch, "/rest/v1/"+table, query, headers, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeFirstRow(resp.Body, dest)
}

// Delete removes the row with the given id.
func (c *Client) Delete(ctx context.Context, table string, id int) error {
	query := url.Values{"id": []string{"eq." + strconv.Itoa(id)}}
	resp, err := c.do(ctx, http.MethodDelete, "/rest/v1/"+table, query, nil, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// decodeFirstRow unwraps the single-element array that write operations
// return with return=representation.
func decodeFirstRow(r io.Reader, dest any) error {
	if dest == nil {
		io.Copy(io.Discard, r)
		return nil
	}
	var rows []json.RawMessage
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return &Error{Status: http.StatusNotFound, Message: "no rows returned"}
	}
	return json.Unmarshal(rows[0], dest)
}

// Package gateway is the typed request/response boundary to the recipe
// service. It owns query-parameter and multipart serialization and the
// mapping of HTTP outcomes onto the fault taxonomy; it holds no business
// logic and no state beyond the bearer credential source.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"forkful/faults"
)

// TokenSource yields the current bearer credential, or "" when logged out.
type TokenSource func() string

type Gateway struct {
	base    string
	client  *http.Client
	limiter *rate.Limiter
	token   TokenSource
}

type Config struct {
	BaseURL string
	Client  *http.Client
	Token   TokenSource
	// Limiter throttles outbound requests. Nil means unlimited.
	Limiter *rate.Limiter
}

func New(cfg Config) *Gateway {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	token := cfg.Token
	if token == nil {
		token = func() string { return "" }
	}
	return &Gateway{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
		limiter: cfg.Limiter,
		token:   token,
	}
}

func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return faults.Validationf("encode request: %v", err)
		}
		buf = bytes.NewReader(data)
	}
	req, err := g.newRequest(ctx, method, path, query, buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return g.send(req, out)
}

func (g *Gateway) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, faults.Transportf(err, "rate limit wait")
		}
	}
	u := g.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, faults.Transportf(err, "build request")
	}
	if tok := g.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

func (g *Gateway) send(req *http.Request, out any) error {
	resp, err := g.client.Do(req)
	if err != nil {
		return faults.Transportf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return faults.Rejectedf(resp.StatusCode, "%s", serverMessage(resp.Body, resp.StatusCode))
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return faults.Integrityf("malformed response body: %v", err)
	}
	return nil
}

// serverMessage extracts the error text the backend sends in its JSON body.
func serverMessage(r io.Reader, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fmt.Sprintf("server returned status %d", status)
}

func (g *Gateway) uploadMultipart(ctx context.Context, path, field, filename string, src io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return faults.Transportf(err, "build multipart body")
	}
	if _, err := io.Copy(part, src); err != nil {
		return faults.Transportf(err, "read upload source")
	}
	if err := w.Close(); err != nil {
		return faults.Transportf(err, "finish multipart body")
	}

	req, err := g.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return g.send(req, out)
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/memoradmin/internal/client/models"
	"github.com/dmitrijs2005/memoradmin/internal/common"
	"github.com/dmitrijs2005/memoradmin/internal/logging"
	"github.com/dmitrijs2005/memoradmin/internal/netx"
	"github.com/google/uuid"
)

const maxErrorBody = 64 << 10

// HTTPGateway implements Gateway against the REST backend.
type HTTPGateway struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        logging.Logger
}

// Option configures an HTTPGateway.
type Option func(*HTTPGateway)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *HTTPGateway) { g.httpClient = c }
}

// WithTimeout sets a client-wide request timeout. Zero keeps the default,
// which never times out.
func WithTimeout(d time.Duration) Option {
	return func(g *HTTPGateway) {
		if d > 0 {
			g.httpClient.Timeout = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l logging.Logger) Option {
	return func(g *HTTPGateway) { g.log = l }
}

// NewHTTPGateway returns a gateway rooted at baseURL. tokens may be nil.
func NewHTTPGateway(baseURL string, tokens TokenSource, opts ...Option) *HTTPGateway {
	g := &HTTPGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		log:        logging.Nop(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *HTTPGateway) endpoint(parts ...string) string {
	escaped := make([]string, 0, len(parts)+1)
	escaped = append(escaped, g.baseURL)
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return strings.Join(escaped, "/")
}

// do sends a request. The token is read from the source on every call so a
// token replaced mid-session applies to the next request.
func (g *HTTPGateway) do(ctx context.Context, method, target string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if g.tokens != nil {
		token, err := g.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read token: %w", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.log.Warn(ctx, "request failed", "method", method, "url", target, "request_id", reqID, "error", err)
		return nil, err
	}
	g.log.Debug(ctx, "request done", "method", method, "url", target, "status", resp.StatusCode,
		"request_id", reqID, "elapsed", time.Since(start))
	return resp, nil
}

// transportError marks failures to reach the backend with ErrUnavailable.
func transportError(err error) error {
	if netx.Unreachable(err) {
		return errors.Join(ErrUnavailable, err)
	}
	return err
}

// List fetches one page of d.
func (g *HTTPGateway) List(ctx context.Context, d *models.Descriptor, q Query) (*models.Page, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.PageSize))
	for _, f := range q.Filters {
		if f.Field == "" || f.Value == "" {
			continue
		}
		params.Set(f.Field, f.Value)
	}
	target := g.endpoint(d.Path, "all") + "?" + params.Encode()

	raw, err := g.read(ctx, d.Name, target)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &FetchError{Entity: d.Name, Err: fmt.Errorf("decode response: %w", err)}
	}

	items := envelope[d.ListKey]
	if items == nil {
		items = envelope["data"]
	}
	var rawItems []json.RawMessage
	if len(items) > 0 && string(items) != "null" {
		if err := json.Unmarshal(items, &rawItems); err != nil {
			return nil, &FetchError{Entity: d.Name, Err: fmt.Errorf("decode %s: %w", d.ListKey, err)}
		}
	}

	page := &models.Page{Items: make([]models.Record, 0, len(rawItems))}
	for _, it := range rawItems {
		rec, err := models.DecodeRecord(d, it)
		if err != nil {
			return nil, &FetchError{Entity: d.Name, Err: err}
		}
		page.Items = append(page.Items, rec)
	}

	if p, ok := envelope["pagination"]; ok {
		if err := json.Unmarshal(p, &page.Pagination); err != nil {
			return nil, &FetchError{Entity: d.Name, Err: fmt.Errorf("decode pagination: %w", err)}
		}
	} else {
		page.Pagination = models.Pagination{CurrentPage: q.Page, TotalPages: 1, TotalItems: len(page.Items)}
	}
	return page, nil
}

// Get fetches a single record of d.
func (g *HTTPGateway) Get(ctx context.Context, d *models.Descriptor, id string) (*models.Record, error) {
	raw, err := g.read(ctx, d.Name, g.endpoint(d.Path, id))
	if err != nil {
		return nil, err
	}
	rec, err := models.DecodeRecord(d, unwrapSingle(raw, d.Name))
	if err != nil {
		return nil, &FetchError{Entity: d.Name, Err: err}
	}
	return &rec, nil
}

func (g *HTTPGateway) read(ctx context.Context, entity, target string) ([]byte, error) {
	resp, err := g.do(ctx, http.MethodGet, target, nil, "")
	if err != nil {
		return nil, &FetchError{Entity: entity, Err: transportError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Entity:  entity,
			Status:  resp.StatusCode,
			Message: backendMessage(resp.Body, resp.Status),
			Err:     statusError(resp.StatusCode),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Entity: entity, Err: fmt.Errorf("read response: %w", err)}
	}
	return raw, nil
}

// Create posts a new record of d.
func (g *HTTPGateway) Create(ctx context.Context, d *models.Descriptor, p Payload) (*models.Record, error) {
	return g.write(ctx, d, "create", http.MethodPost, g.endpoint(d.Path), p.Record.Body(false), p.Attachments)
}

// Update replaces a record of d using the descriptor's update style. The full
// multilingual object is always sent.
func (g *HTTPGateway) Update(ctx context.Context, d *models.Descriptor, id string, p Payload) (*models.Record, error) {
	p.Record.ID = id
	switch d.Update {
	case models.UpdatePost:
		return g.write(ctx, d, "update", http.MethodPost, g.endpoint(d.Path, "update"), p.Record.Body(true), p.Attachments)
	default:
		return g.write(ctx, d, "update", http.MethodPut, g.endpoint(d.Path, id), p.Record.Body(false), p.Attachments)
	}
}

// Delete removes a record of d using the descriptor's delete style.
func (g *HTTPGateway) Delete(ctx context.Context, d *models.Descriptor, id string) error {
	if d.Delete == models.DeleteSoft {
		body := map[string]any{"isDeleted": true}
		method, target := http.MethodPut, g.endpoint(d.Path, id)
		if d.Update == models.UpdatePost {
			method, target = http.MethodPost, g.endpoint(d.Path, "update")
			body["id"] = id
		}
		_, err := g.write(ctx, d, "delete", method, target, body, nil)
		return err
	}

	resp, err := g.do(ctx, http.MethodDelete, g.endpoint(d.Path, id), nil, "")
	if err != nil {
		return &MutationError{Op: "delete", Entity: d.Name, Err: transportError(err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &MutationError{
			Op:      "delete",
			Entity:  d.Name,
			Status:  resp.StatusCode,
			Message: backendMessage(resp.Body, ""),
			Err:     statusError(resp.StatusCode),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (g *HTTPGateway) write(ctx context.Context, d *models.Descriptor, op, method, target string, body map[string]any, files []models.Attachment) (*models.Record, error) {
	var (
		buf         bytes.Buffer
		contentType string
		err         error
	)
	if len(files) > 0 {
		contentType, err = encodeMultipart(&buf, body, files)
	} else {
		contentType = "application/json"
		err = json.NewEncoder(&buf).Encode(body)
	}
	if err != nil {
		return nil, &MutationError{Op: op, Entity: d.Name, Err: fmt.Errorf("encode body: %w", err)}
	}

	resp, err := g.do(ctx, method, target, &buf, contentType)
	if err != nil {
		return nil, &MutationError{Op: op, Entity: d.Name, Err: transportError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &MutationError{
			Op:      op,
			Entity:  d.Name,
			Status:  resp.StatusCode,
			Message: backendMessage(resp.Body, ""),
			Err:     statusError(resp.StatusCode),
		}
	}

	// The caller re-lists after every mutation, so an unreadable answer is
	// logged and not treated as a failure.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		g.log.Warn(ctx, "failed to read mutation response", "op", op, "entity", d.Name, "error", err)
		return nil, nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	rec, err := models.DecodeRecord(d, unwrapSingle(raw, d.Name))
	if err != nil {
		g.log.Warn(ctx, "failed to decode mutation response", "op", op, "entity", d.Name, "error", err)
		return nil, nil
	}
	return &rec, nil
}

func encodeMultipart(w io.Writer, body map[string]any, files []models.Attachment) (string, error) {
	mw := multipart.NewWriter(w)
	for k, v := range body {
		var value string
		switch x := v.(type) {
		case string:
			value = x
		case json.RawMessage:
			var s string
			if err := json.Unmarshal(x, &s); err == nil {
				value = s
			} else {
				value = string(x)
			}
		default:
			b, err := json.Marshal(x)
			if err != nil {
				return "", fmt.Errorf("field %s: %w", k, err)
			}
			value = string(b)
		}
		if err := mw.WriteField(k, value); err != nil {
			return "", err
		}
	}
	for _, f := range files {
		if err := attachFile(mw, f); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}

func attachFile(mw *multipart.Writer, a models.Attachment) error {
	src, err := os.Open(a.Path)
	if err != nil {
		return fmt.Errorf("open attachment %s: %w", a.Field, err)
	}
	defer src.Close()

	part, err := mw.CreateFormFile(a.Field, filepath.Base(a.Path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, src)
	return err
}

// backendMessage extracts "message" or "error" from a JSON error body.
func backendMessage(r io.Reader, fallback string) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fallback
}

// unwrapSingle accepts a bare record or one wrapped as {"data": {...}} or
// {"<entity>": {...}}.
func unwrapSingle(raw []byte, entity string) []byte {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return raw
	}
	for _, key := range []string{"data", entity} {
		inner, ok := envelope[key]
		if ok && len(inner) > 0 && inner[0] == '{' {
			return inner
		}
	}
	return raw
}

// referenceKinds maps a reference kind to its path and list key.
var referenceKinds = map[string]struct{ path, key string }{
	"countries": {"country", "countries"},
	"colors":    {"color", "colors"},
	"addons":    {"addon", "addons"},
}

// ReferenceKinds lists the supported reference data kinds.
func ReferenceKinds() []string {
	return []string{"addons", "colors", "countries"}
}

// Reference fetches auxiliary reference data such as countries or colors.
func (g *HTTPGateway) Reference(ctx context.Context, kind string) ([]ReferenceItem, error) {
	rk, ok := referenceKinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown reference kind %q", kind)
	}
	raw, err := g.read(ctx, kind, g.endpoint(rk.path, "all"))
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &FetchError{Entity: kind, Err: fmt.Errorf("decode response: %w", err)}
	}
	items := envelope[rk.key]
	if items == nil {
		items = envelope["data"]
	}
	var out []ReferenceItem
	if len(items) > 0 && string(items) != "null" {
		if err := json.Unmarshal(items, &out); err != nil {
			return nil, &FetchError{Entity: kind, Err: fmt.Errorf("decode %s: %w", rk.key, err)}
		}
	}
	return out, nil
}

package dummyjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/models"
)

// DefaultPageSize matches the limit the source caps list responses at.
const DefaultPageSize = 100

// Client pages the DummyJSON-style API. Each list resource returns its
// records under a field named after the resource ("users", "carts") and
// accepts limit/skip query parameters.
type Client struct {
	BaseURL    string
	PageSize   int
	HTTPClient *http.Client
}

func NewClient(baseURL string, pageSize int) *Client {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Client{
		BaseURL:    baseURL,
		PageSize:   pageSize,
		HTTPClient: http.DefaultClient,
	}
}

// TransportError is any failure talking to the remote source: network error,
// non-2xx status, or a body that does not decode. Extraction never retries;
// the caller aborts the run.
type TransportError struct {
	Resource string
	Skip     int
	Status   int
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s (skip=%d): unexpected status %d", e.Resource, e.Skip, e.Status)
	}
	return fmt.Sprintf("fetch %s (skip=%d): %v", e.Resource, e.Skip, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// FetchUsers extracts every user, page by page, in remote order.
func (c *Client) FetchUsers() ([]models.User, error) {
	raws, err := c.fetchAll("users")
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(raws))
	for _, raw := range raws {
		var u models.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, &TransportError{Resource: "users", Err: fmt.Errorf("decode user: %w", err)}
		}
		users = append(users, u)
	}
	return users, nil
}

// FetchCarts extracts every cart with its line items, page by page, in
// remote order.
func (c *Client) FetchCarts() ([]models.Cart, error) {
	raws, err := c.fetchAll("carts")
	if err != nil {
		return nil, err
	}
	carts := make([]models.Cart, 0, len(raws))
	for _, raw := range raws {
		var cart models.Cart
		if err := json.Unmarshal(raw, &cart); err != nil {
			return nil, &TransportError{Resource: "carts", Err: fmt.Errorf("decode cart: %w", err)}
		}
		carts = append(carts, cart)
	}
	return carts, nil
}

// fetchAll advances skip by PageSize until a page comes back shorter than
// PageSize. A total that is an exact multiple of the page size costs one
// extra request that returns an empty page.
func (c *Client) fetchAll(resource string) ([]json.RawMessage, error) {
	var all []json.RawMessage
	skip := 0

	for {
		url := fmt.Sprintf("%s/%s?limit=%d&skip=%d", c.BaseURL, resource, c.PageSize, skip)
		resp, err := c.httpClient().Get(url)
		if err != nil {
			return nil, &TransportError{Resource: resource, Skip: skip, Err: err}
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, &TransportError{Resource: resource, Skip: skip, Err: err}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &TransportError{Resource: resource, Skip: skip, Status: resp.StatusCode}
		}

		// A garbage body (say, a gateway maintenance page) must not pass
		// for an empty page. Valid JSON without the resource field still
		// counts as exhaustion, same as the source returning no records.
		if !gjson.ValidBytes(body) {
			return nil, &TransportError{Resource: resource, Skip: skip, Err: errors.New("invalid JSON body")}
		}

		page := gjson.GetBytes(body, resource).Array()
		if len(page) == 0 {
			break
		}
		for _, item := range page {
			all = append(all, json.RawMessage(item.Raw))
		}
		log.Printf("⬇️  Extracted %d %s (skip=%d)", len(page), resource, skip)

		if len(page) < c.PageSize {
			break
		}
		skip += c.PageSize
	}

	log.Printf("✅ Total %s extracted: %d", resource, len(all))
	return all, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

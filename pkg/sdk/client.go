package sdk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matst80/slask-storefront/pkg/common/jsoncompat"
	"golang.org/x/oauth2/clientcredentials"
)

// Searcher executes product searches. The client and the cache implement it.
type Searcher interface {
	SearchProducts(ctx context.Context, req *ProductSearchRequest) (*PagedSearchResult, error)
}

var ErrNotFound = errors.New("sdk: resource not found")

type ErrorObject struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error is a non successful platform response.
type Error struct {
	StatusCode int           `json:"statusCode"`
	Message    string        `json:"message"`
	Errors     []ErrorObject `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("sdk: platform responded %d", e.StatusCode)
	}
	return fmt.Sprintf("sdk: platform responded %d: %s", e.StatusCode, e.Message)
}

// Client is the shared, read only platform client. Construct it once in the
// composition root and pass it to whoever needs it.
type Client struct {
	config ClientConfig
	http   *http.Client
}

// NewClient authenticates with the client credentials flow; tokens are
// fetched and refreshed by the returned http client.
func NewClient(ctx context.Context, cfg ClientConfig) *Client {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientId,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     strings.TrimSuffix(cfg.AuthUrl, "/") + "/oauth/token",
		Scopes:       cfg.scopes(),
	}
	return &Client{config: cfg, http: cc.Client(ctx)}
}

// NewClientWithHttp uses an already authenticated http client.
func NewClientWithHttp(cfg ClientConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{config: cfg, http: httpClient}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := strings.TrimSuffix(c.config.ApiUrl, "/") + "/" + c.config.ProjectKey + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sdk: request %s: %w", path, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeError(res)
	}
	if err := jsoncompat.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("sdk: decode %s: %w", path, err)
	}
	return nil
}

func decodeError(res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 64*1024))
	e := &Error{}
	if len(body) > 0 {
		if err := jsoncompat.Unmarshal(body, e); err != nil {
			e.Message = strings.TrimSpace(string(body))
		}
	}
	e.StatusCode = res.StatusCode
	return e
}

func (c *Client) SearchProducts(ctx context.Context, req *ProductSearchRequest) (*PagedSearchResult, error) {
	result := &PagedSearchResult{}
	if err := c.get(ctx, "/product-projections/search", req.Values(), result); err != nil {
		return nil, err
	}
	return result, nil
}

type pagedQueryResult[T any] struct {
	Offset  int64 `json:"offset"`
	Count   int64 `json:"count"`
	Total   int64 `json:"total"`
	Results []T   `json:"results"`
}

// ProductBySlug returns the current projection with the slug in the locale.
func (c *Client) ProductBySlug(ctx context.Context, slug, locale string) (*ProductProjection, error) {
	q := url.Values{}
	q.Set("where", fmt.Sprintf("slug(%s=%s)", locale, strconv.Quote(slug)))
	q.Set("limit", "1")
	q.Set("staged", "false")
	result := pagedQueryResult[ProductProjection]{}
	if err := c.get(ctx, "/product-projections", q, &result); err != nil {
		return nil, err
	}
	if len(result.Results) == 0 {
		return nil, ErrNotFound
	}
	return &result.Results[0], nil
}

const categoryPageSize = 500

// Categories pages through every category of the project.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	ret := make([]Category, 0)
	for offset := 0; ; offset += categoryPageSize {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(categoryPageSize))
		q.Set("offset", strconv.Itoa(offset))
		q.Set("sort", "id asc")
		page := pagedQueryResult[Category]{}
		if err := c.get(ctx, "/categories", q, &page); err != nil {
			return nil, err
		}
		ret = append(ret, page.Results...)
		if len(page.Results) < categoryPageSize || int64(len(ret)) >= page.Total {
			return ret, nil
		}
	}
}

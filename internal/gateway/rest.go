package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/emilythestrangee/nexus/backend/internal/models"
)

// RESTClient reads tables through Supabase's PostgREST endpoint.
type RESTClient struct {
	baseURL    string
	key        string
	httpClient *http.Client
}

func NewRESTClient(baseURL, key string, httpClient *http.Client) *RESTClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/") + "/rest/v1",
		key:        key,
		httpClient: httpClient,
	}
}

// postgrestError is the error body PostgREST returns on non-2xx responses.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (c *RESTClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, "/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &BackendError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return &BackendError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return nil
}

func (c *RESTClient) List(ctx context.Context, res models.Resource, category string) ([]models.Row, error) {
	params := baseParams()
	if !models.IsAllCategory(category) {
		params.Set("category", "eq."+category)
	}
	return c.query(ctx, res.Table, params)
}

func (c *RESTClient) Search(ctx context.Context, res models.Resource, text string) ([]models.Row, error) {
	if strings.TrimSpace(text) == "" {
		return c.List(ctx, res, "")
	}

	pattern := quoteValue("*" + escapeLike(text) + "*")
	params := baseParams()
	params.Set("or", fmt.Sprintf("(title.ilike.%s,%s.ilike.%s)", pattern, res.TextColumn, pattern))
	return c.query(ctx, res.Table, params)
}

func (c *RESTClient) GetByID(ctx context.Context, res models.Resource, id string) (models.Row, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("id", "eq."+id)
	params.Set("limit", "1")

	rows, err := c.query(ctx, res.Table, params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %q: %w", res.Name, id, ErrNotFound)
	}
	return rows[0], nil
}

func (c *RESTClient) query(ctx context.Context, table string, params url.Values) ([]models.Row, error) {
	req, err := c.newRequest(ctx, "/"+url.PathEscape(table), params)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &BackendError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, decodeError(resp)
	}

	var rows []models.Row
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		return nil, &BackendError{Status: resp.StatusCode, Message: "failed to decode rows: " + err.Error(), Err: err}
	}
	return emptyIfNil(rows), nil
}

func (c *RESTClient) newRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var pe postgrestError
	if err := json.Unmarshal(body, &pe); err != nil || pe.Message == "" {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &BackendError{Status: resp.StatusCode, Message: msg}
	}
	return &BackendError{
		Status:  resp.StatusCode,
		Code:    pe.Code,
		Message: pe.Message,
		Details: pe.Details,
		Hint:    pe.Hint,
	}
}

func baseParams() url.Values {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("order", "created_at.desc")
	return params
}

// escapeLike makes LIKE metacharacters in user text match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// quoteValue wraps a PostgREST filter value in double quotes so commas and
// parentheses in user text do not break the or=(...) grammar.
func quoteValue(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

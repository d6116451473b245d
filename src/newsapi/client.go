package newsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"git.dsvv.ac.in/cs/newsportal/src/auth"
	"git.dsvv.ac.in/cs/newsportal/src/config"
	"git.dsvv.ac.in/cs/newsportal/src/logging"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
	"git.dsvv.ac.in/cs/newsportal/src/perf"
)

const UserAgent = "DSVVNewsPortal (https://cs.dsvv.ac.in/, 1.0)"

var ErrUnauthorized = errors.New("backend rejected our credentials")
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
	Errors  []FieldError
}

type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, msg)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// FieldMessages returns the backend's per-field validation messages, in order.
func (e *APIError) FieldMessages() []string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Msg)
	}
	return msgs
}

// A Client talks to the news backend. It is cheap to copy; WithSession makes
// a per-request copy bound to one browser's credentials.
type Client struct {
	BaseUrl string
	HTTP    *http.Client
	Session *auth.Session
}

func New(baseUrl string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		BaseUrl: strings.TrimSuffix(baseUrl, "/"),
		HTTP:    httpClient,
	}
}

// NewFromConfig builds the client the website and CLI use.
func NewFromConfig() *Client {
	return New(config.Config.API.BaseUrl, &http.Client{
		Timeout: config.Config.API.Timeout,
	})
}

func (c *Client) WithSession(s *auth.Session) *Client {
	clone := *c
	clone.Session = s
	return &clone
}

func (c *Client) buildUrl(path string, query url.Values) string {
	u := c.BaseUrl + path
	if encoded := query.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func (c *Client) makeRequest(ctx context.Context, method string, path string, query url.Values, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.buildUrl(path, query), body)
	if err != nil {
		return nil, oops.New(err, "failed to create request")
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	if token := c.Session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends the request and turns any non-2xx response into an *APIError.
// A 401 also invalidates the session, whatever endpoint it came from.
func (c *Client) do(ctx context.Context, name string, req *http.Request) ([]byte, error) {
	defer perf.ExtractPerf(ctx).StartBlock("API", name).End()

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, oops.New(err, "request to %s failed", name)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, oops.New(err, "failed to read response body from %s", name)
	}

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return body, nil
	}

	apiErr := parseErrorResponse(res.StatusCode, body)
	if res.StatusCode == http.StatusUnauthorized {
		c.Session.Invalidate()
		logging.ExtractLogger(ctx).Warn().Str("name", name).Msg("backend returned 401; session invalidated")
	} else if res.StatusCode != http.StatusNotFound {
		logErrorResponse(ctx, name, res, body)
	}
	return nil, apiErr
}

func parseErrorResponse(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var parsed struct {
		Message string       `json:"message"`
		Error   string       `json:"error"`
		Errors  []FieldError `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Message = parsed.Message
		if apiErr.Message == "" {
			apiErr.Message = parsed.Error
		}
		apiErr.Errors = parsed.Errors
	}
	return apiErr
}

func logErrorResponse(ctx context.Context, name string, res *http.Response, body []byte) {
	const maxBody = 2048
	if len(body) > maxBody {
		body = body[:maxBody]
	}
	logging.ExtractLogger(ctx).Error().
		Str("name", name).
		Int("status", res.StatusCode).
		Str("url", res.Request.URL.String()).
		Str("body", string(body)).
		Msg("received error from news backend")
}

func (c *Client) doJSON(ctx context.Context, name string, method string, path string, query url.Values, in any, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return oops.New(err, "failed to marshal %s request", name)
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.makeRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resBody, err := c.do(ctx, name, req)
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(resBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resBody, out); err != nil {
		return oops.New(err, "failed to unmarshal %s response", name)
	}
	return nil
}

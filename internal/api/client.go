package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Credentials supplies the bearer token and CSRF pair attached to requests.
// Implemented by auth.Session; a nil Credentials sends anonymous requests.
type Credentials interface {
	Token() string
	CSRF() (header, value string)
}

// Client is an HTTP client for the Quizzer REST backend. All endpoint
// groups (auth, quizzes, questions, tokens, taking) hang off it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      Credentials
	timeout    time.Duration
}

// NewClient creates a client for the backend at baseURL. creds may be nil.
func NewClient(baseURL string, creds Credentials, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		creds:      creds,
		timeout:    timeout,
	}
}

// StatusError is an HTTP-level failure carrying a user-facing message for
// the status code.
type StatusError struct {
	StatusCode int
	Message    string
	Expired    bool
}

func (e *StatusError) Error() string {
	return e.Message
}

// User-facing messages. The product ships in Italian.
const (
	msgBadRequest   = "I dati inseriti non sono validi"
	msgUnauthorized = "Non sei autenticato, effettua il login"
	msgForbidden    = "Non sei autorizzato ad accedere a questa risorsa"
	msgExpired      = "Il tempo a disposizione è scaduto"
	msgNotFound     = "La risorsa richiesta non esiste"
	msgGeneric      = "Si è verificato un errore, riprova più tardi"
)

func statusError(code int, body []byte) *StatusError {
	expired := code == http.StatusForbidden && bytes.Contains(body, []byte("expired"))

	msg := msgGeneric
	switch code {
	case http.StatusBadRequest:
		msg = msgBadRequest
	case http.StatusUnauthorized:
		msg = msgUnauthorized
	case http.StatusForbidden:
		msg = msgForbidden
		if expired {
			msg = msgExpired
		}
	case http.StatusNotFound:
		msg = msgNotFound
	}
	return &StatusError{StatusCode: code, Message: msg, Expired: expired}
}

// do performs one request. A JSON body is sent when in is non-nil and the
// response is decoded into out when out is non-nil. The backend sometimes
// omits a body on success; a 2xx response whose body is not valid JSON then
// falls back to decoding the request payload into out as the assumed result.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var payload []byte
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = data
		body = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if header, value := c.creds.CSRF(); header != "" && value != "" {
			req.Header.Set(header, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		if payload != nil {
			if echoErr := json.Unmarshal(payload, out); echoErr == nil {
				return nil
			}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

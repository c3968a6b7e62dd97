package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"estate-access-service/internal/config"
)

var ErrProvider = errors.New("mpesa provider error")

const (
	requestTimeout = 10 * time.Second
	retryBackoff   = 500 * time.Millisecond
)

// Client talks to the Daraja API: OAuth token fetch plus STK push.
// Both calls get one retry with a short backoff on transport failure.
type Client struct {
	baseURL     string
	consumerKey string
	secret      string
	shortCode   string
	passKey     string
	callbackURL string
	httpClient  *http.Client

	// mu guards the token cache; concurrent pushes must not race a refresh.
	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:     cfg.MpesaBaseURL,
		consumerKey: cfg.MpesaConsumerKey,
		secret:      cfg.MpesaSecret,
		shortCode:   cfg.MpesaShortCode,
		passKey:     cfg.MpesaPassKey,
		callbackURL: cfg.MpesaCallbackURL,
		httpClient:  &http.Client{Timeout: requestTimeout},
	}
}

type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// accessToken returns the cached token, refreshing it under the lock so that
// exactly one caller hits the OAuth endpoint while the rest wait for its result.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.consumerKey + ":" + c.secret))
	req.Header.Set("Authorization", "Basic "+basic)

	body, err := c.doWithRetry(req, nil)
	if err != nil {
		return "", err
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("%w: bad token response: %v", ErrProvider, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrProvider)
	}
	ttl := 3600
	if n, err := strconv.Atoi(tok.ExpiresIn); err == nil && n > 0 {
		ttl = n
	}
	c.token = tok.AccessToken
	// refresh a minute early
	c.tokenExpiry = time.Now().Add(time.Duration(ttl-60) * time.Second)
	return c.token, nil
}

// STKPush asks the provider to prompt the payer's phone for amount.
// phone must be in 2547XXXXXXXX form; reference shows on the payer's statement.
func (c *Client) STKPush(ctx context.Context, phone string, amount float64, reference, description string) (*STKPushResponse, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	ts := time.Now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString([]byte(c.shortCode + c.passKey + ts))
	payload := map[string]any{
		"BusinessShortCode": c.shortCode,
		"Password":          password,
		"Timestamp":         ts,
		"TransactionType":   "CustomerPayBillOnline",
		"Amount":            int64(amount),
		"PartyA":            phone,
		"PartyB":            c.shortCode,
		"PhoneNumber":       phone,
		"CallBackURL":       c.callbackURL,
		"AccountReference":  reference,
		"TransactionDesc":   description,
	}
	raw, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.doWithRetry(req, raw)
	if err != nil {
		return nil, err
	}

	var out STKPushResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: bad stk response: %v", ErrProvider, err)
	}
	if out.ResponseCode != "0" {
		return nil, fmt.Errorf("%w: response code %s: %s", ErrProvider, out.ResponseCode, out.ResponseDescription)
	}
	return &out, nil
}

// doWithRetry performs the request, retrying once after a short backoff on
// transport errors or 5xx. rawBody is re-attached before the retry.
func (c *Client) doWithRetry(req *http.Request, rawBody []byte) ([]byte, error) {
	attempt := func() (body []byte, retryable bool, err error) {
		if rawBody != nil {
			req.Body = io.NopCloser(bytes.NewReader(rawBody))
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, true, fmt.Errorf("%w: %v", ErrProvider, err)
		}
		defer resp.Body.Close()
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, true, fmt.Errorf("%w: %v", ErrProvider, err)
		}
		if resp.StatusCode >= 500 {
			return nil, true, fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return nil, false, fmt.Errorf("%w: status %d: %s", ErrProvider, resp.StatusCode, body)
		}
		return body, false, nil
	}

	body, retryable, err := attempt()
	if err == nil || !retryable {
		return body, err
	}
	select {
	case <-req.Context().Done():
		return nil, err
	case <-time.After(retryBackoff):
	}
	body, _, err = attempt()
	return body, err
}

// Package invoicegen provides a thin client for the invoice rendering
// HTTP API, which turns flat invoice data into a PDF document.
package invoicegen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/angelofallars/hourbill/internal/invoice"
)

// ErrTimeout is returned when the generation request does not complete
// within the client's timeout.
var ErrTimeout = errors.New("invoice generation timed out")

// GenFailedError is returned when the service answers with a non-200
// status. It carries the status code and raw body for diagnostics.
type GenFailedError struct {
	StatusCode int
	Body       string
}

func (e *GenFailedError) Error() string {
	return fmt.Sprintf("invoice generation failed: status code: %d, API msg: %s", e.StatusCode, e.Body)
}

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	now      func() time.Time
}

func New(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
		now:      time.Now,
	}
}

// WithNow overrides the clock used for the invoice date and the
// generation timestamp.
func (c *Client) WithNow(now func() time.Time) *Client {
	c.now = now
	return c
}

// Generate submits the invoice in a single synchronous call and wraps
// the response body as artifact bytes. The bytes are treated as an
// opaque blob. No retry is attempted; callers re-run the pipeline if
// they want another go.
func (c *Client) Generate(ctx context.Context, inv *invoice.Invoice) (*invoice.GeneratedInvoice, error) {
	payload := Payload(inv, invoice.PrettyDate(c.now()))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		strings.NewReader(payload.Encode()))
	if err != nil {
		return nil, fmt.Errorf("invoice generation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("invoice generation request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("invoice generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &GenFailedError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return &invoice.GeneratedInvoice{
		Invoice:     inv,
		PDFData:     body,
		GeneratedAt: c.now(),
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

// Package functions calls the hosted serverless functions that handle
// email delivery and privileged maintenance jobs. Each function is an
// opaque remote procedure: JSON in, {success|error} out, no retries.
package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/condofacil/backend/internal/types"
)

// ErrRemote is returned when a function reports or causes a failure.
var ErrRemote = errors.New("the remote function call failed")

// Client invokes hosted functions below a common base URL.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient returns a client for the functions hosted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type response struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// invoke POSTs the payload to the named function and checks the response
// envelope.
func (c *Client) invoke(ctx context.Context, name string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/%s", c.baseURL, name), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemote, err)
	}
	defer resp.Body.Close()

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("%w: un-parseable response from %s", ErrRemote, name)
	}

	if resp.StatusCode >= http.StatusBadRequest || !r.Success {
		if r.Error != "" {
			return fmt.Errorf("%w: %s", ErrRemote, r.Error)
		}

		return fmt.Errorf("%w: %s returned HTTP %d", ErrRemote, name, resp.StatusCode)
	}

	return nil
}

// AccountingReport is the payload for the send-accounting-report function.
type AccountingReport struct {
	Matricula      string            `json:"matricula"`
	Email          string            `json:"email"`
	ReferenceMonth types.Month       `json:"referenceMonth"`
	Incomes        []ReportEntry     `json:"incomes"`
	Expenses       []ReportEntry     `json:"expenses"`
	Balance        string            `json:"balance"`
}

// ReportEntry is one ledger line in an accounting report.
type ReportEntry struct {
	Categoria string `json:"categoria"`
	Valor     string `json:"valor"`
	Unidade   string `json:"unidade,omitempty"`
	Data      string `json:"data"`
}

// SendAccountingReport emails a month's bookkeeping to the manager.
func (c *Client) SendAccountingReport(ctx context.Context, report AccountingReport) error {
	return c.invoke(ctx, "send-accounting-report", report)
}

// AnnouncementEmail is the payload for the send-announcement-email function.
type AnnouncementEmail struct {
	Matricula  string   `json:"matricula"`
	Titulo     string   `json:"titulo"`
	Mensagem   string   `json:"mensagem"`
	Recipients []string `json:"recipients"`
}

// SendAnnouncementEmail fans an announcement out to resident inboxes.
func (c *Client) SendAnnouncementEmail(ctx context.Context, email AnnouncementEmail) error {
	return c.invoke(ctx, "send-announcement-email", email)
}

// SendPasswordReset asks the identity provider to mail a reset link.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	return c.invoke(ctx, "send-password-reset", map[string]string{"email": email})
}

// RequestHistoricalData queues an export of a tenant's historical records.
func (c *Client) RequestHistoricalData(ctx context.Context, matricula, email string) error {
	return c.invoke(ctx, "historical-data-request", map[string]string{
		"matricula": matricula,
		"email":     email,
	})
}

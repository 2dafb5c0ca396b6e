// Package support contains the adapter for the marketplace's support
// portal. The portal has no API: the adapter reverse-engineers the HTML
// form flow — session cookie, CSRF token from an embedded config blob,
// and a single-use submission token per ticket form load.
package support

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/staletick/internal/ports/secondary"
)

const (
	defaultBaseURL = "https://support.funpay.com"
	defaultTimeout = 30 * time.Second

	newTicketPath    = "/tickets/new/1"
	createTicketPath = "/tickets/create/1"

	// maxRedirectHops bounds the manual redirect walk before falling back
	// to a plain request against the original URL.
	maxRedirectHops = 10

	sessionCookieName = "PHPSESSID"
	tokenInputName    = "ticket[_token]"
)

// Ticket form field IDs on the portal's static "unconfirmed order" form.
const (
	fieldReporterName   = "ticket[fields][1]"
	fieldOrderReference = "ticket[fields][2]"
	fieldCategory       = "ticket[fields][3]"
	fieldPriority       = "ticket[fields][5]"
	fieldCommentBody    = "ticket[comment][body_html]"
	fieldAttachments    = "ticket[comment][attachments]"
	fieldToken          = "ticket[_token]"

	categoryCode = "2"
	priorityCode = "201"
)

// Client implements secondary.SupportGateway. It is safe to reuse across
// runs; each Bootstrap call yields an independent session.
type Client struct {
	baseURL string
	account secondary.Account

	// noRedirect performs single requests with redirects disabled so the
	// hop chain can be walked manually.
	noRedirect *http.Client

	// following is the fallback client with default redirect handling,
	// used only when the manual walk exhausts the hop limit.
	following *http.Client
}

// NewClient creates a support portal client for the given account. An
// empty baseURL targets the production portal.
func NewClient(baseURL string, account secondary.Account) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := account.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		account: account,
		noRedirect: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		following: &http.Client{Timeout: timeout},
	}
}

// session is one authenticated portal session. Owned by a single
// escalation attempt; not safe for concurrent use.
type session struct {
	client    *Client
	sessionID string
	csrfToken string

	// appConfig is the raw configuration blob the portal embeds in its
	// root page, kept for inspection beyond the CSRF token.
	appConfig map[string]any
}

// Bootstrap establishes a fresh session: first request without any cached
// session cookie to obtain a new one, second request with it to read the
// CSRF token out of the rendered page.
func (c *Client) Bootstrap(ctx context.Context) (secondary.SupportSession, error) {
	s := &session{client: c}

	resp, _, err := c.do(ctx, http.MethodGet, c.baseURL+"/", nil, nil, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session cookie: %w", err)
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			s.sessionID = cookie.Value
		}
	}

	_, body, err := c.do(ctx, http.MethodGet, c.baseURL+"/", nil, nil, s.sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch portal root: %w", err)
	}

	blob, err := appConfigAttr(body)
	if err != nil {
		return nil, fmt.Errorf("failed to locate app config: %w", err)
	}
	if err := json.Unmarshal([]byte(blob), &s.appConfig); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}
	token, ok := s.appConfig["csrfToken"].(string)
	if !ok || token == "" {
		return nil, fmt.Errorf("app config has no csrf token")
	}
	s.csrfToken = token

	return s, nil
}

// CreateTicket fetches a fresh submission token and posts the ticket form,
// returning the portal's parsed JSON response.
func (s *session) CreateTicket(ctx context.Context, orderID, comment string) (*secondary.TicketResponse, error) {
	token, err := s.ticketToken(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set(fieldReporterName, s.client.account.Username)
	form.Set(fieldOrderReference, orderID)
	form.Set(fieldCategory, categoryCode)
	form.Set(fieldPriority, priorityCode)
	form.Set(fieldCommentBody, "<p>"+comment+"</p>")
	form.Set(fieldAttachments, "")
	form.Set(fieldToken, token)

	headers := map[string]string{
		"Origin":           s.client.baseURL,
		"Accept":           "application/json",
		"Content-Type":     "application/x-www-form-urlencoded; charset=UTF-8",
		"X-Requested-With": "XMLHttpRequest",
		"X-CSRF-Token":     s.csrfToken,
	}
	_, body, err := s.client.do(ctx, http.MethodPost, s.client.baseURL+createTicketPath, headers, form, s.sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to submit ticket: %w", err)
	}

	var resp secondary.TicketResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse ticket response: %w", err)
	}
	return &resp, nil
}

// ticketToken loads the new-ticket form and extracts the hidden single-use
// submission token. The portal embeds a fresh token per form load, so this
// runs before every submission.
func (s *session) ticketToken(ctx context.Context) (string, error) {
	headers := map[string]string{
		"X-CSRF-Token": s.csrfToken,
		"Accept":       "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Referer":      s.client.baseURL + "/",
	}
	_, body, err := s.client.do(ctx, http.MethodGet, s.client.baseURL+newTicketPath, headers, nil, s.sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch ticket form: %w", err)
	}

	token, err := hiddenInputValue(body, tokenInputName)
	if err != nil {
		return "", fmt.Errorf("failed to extract ticket token: %w", err)
	}
	return token, nil
}

// do issues one authenticated request, walking redirect responses by hand:
// up to maxRedirectHops hops, stopping early when there is no Location or
// the target is the root path. If the hop limit runs out, the original
// request is reissued once with default redirect handling.
func (c *Client) do(ctx context.Context, method, rawURL string, headers map[string]string, form url.Values, sessionID string) (*http.Response, []byte, error) {
	link := rawURL
	for hop := 0; hop < maxRedirectHops; hop++ {
		resp, body, err := c.send(ctx, c.noRedirect, method, link, headers, form, sessionID)
		if err != nil {
			return nil, nil, err
		}

		location := resp.Header.Get("Location")
		if resp.StatusCode < 300 || resp.StatusCode >= 400 || location == "" || location == "/" {
			return resp, body, nil
		}
		link = resolveLocation(resp, location)
	}

	// Hop limit exhausted: reissue against the original URL and let the
	// client follow redirects itself.
	return c.send(ctx, c.following, method, rawURL, headers, form, sessionID)
}

// send performs a single HTTP exchange with the composed cookie header and
// fully read body.
func (c *Client) send(ctx context.Context, client *http.Client, method, link string, headers map[string]string, form url.Values, sessionID string) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, link, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build request: %w", err)
	}

	for name, value := range headers {
		req.Header.Set(name, value)
	}
	req.Header.Set("Cookie", c.cookieHeader(sessionID))
	if c.account.UserAgent != "" {
		req.Header.Set("User-Agent", c.account.UserAgent)
	}
	if form != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp, body, nil
}

// cookieHeader composes the credential cookie, consent flag and, when
// known, the session cookie into one header value.
func (c *Client) cookieHeader(sessionID string) string {
	header := "golden_key=" + c.account.GoldenKey + "; cookie_prefs=1"
	if sessionID != "" {
		header += "; " + sessionCookieName + "=" + sessionID
	}
	return header
}

// resolveLocation makes a redirect target absolute against the response's
// request URL. The raw header value is what the early-stop predicate in do
// inspects; resolution only affects where the next hop is sent.
func resolveLocation(resp *http.Response, location string) string {
	target, err := url.Parse(location)
	if err != nil {
		return location
	}
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.ResolveReference(target).String()
	}
	return location
}

// Ensure Client implements the interface
var _ secondary.SupportGateway = (*Client)(nil)

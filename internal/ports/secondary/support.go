package secondary

import "context"

// TicketResponse is the parsed JSON body returned by the support portal's
// ticket-creation endpoint. Whether it denotes success is interpreted by
// the orchestrator, not here.
type TicketResponse struct {
	Action  string `json:"action"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// SupportSession is an authenticated session against the support portal.
// The session cookie and CSRF token are resolved at bootstrap; the
// single-use submission token is fetched fresh inside every CreateTicket.
type SupportSession interface {
	// CreateTicket submits one support ticket referencing the given order
	// (empty orderID files a ticket without an order reference) and
	// returns the parsed response body.
	CreateTicket(ctx context.Context, orderID, comment string) (*TicketResponse, error)
}

// SupportGateway bootstraps authenticated support-portal sessions.
type SupportGateway interface {
	// Bootstrap establishes a fresh session: session cookie first, then
	// the CSRF token from the rendered root page. Any network or parse
	// failure is unrecoverable for this attempt.
	Bootstrap(ctx context.Context) (SupportSession, error)
}

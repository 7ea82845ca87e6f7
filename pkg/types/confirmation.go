package types

// ConfirmationRequest represents a request for operator confirmation before
// an irreversible step
type ConfirmationRequest struct {
	// Title is a brief description of what is about to happen
	Title string

	// Description tells the operator what to double-check
	Description string

	// Items lists specific items that will be affected
	Items []string

	// Literal is the exact (trimmed) input that approves the request.
	// An empty Literal means a yes/no question.
	Literal string
}

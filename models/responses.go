package models

// Response is the envelope wrapping every body emitted by the dispatcher.
// The shape is fixed: consumers rely on the success flag and the message
// string being present even when data is null.
type Response struct {
	// Success reports whether the request was handled without error.
	Success bool `json:"success"`

	// Message is a short human-readable outcome description.
	// Defaults to "Success" for successful replies and "Error" otherwise.
	Message string `json:"message"`

	// Data carries the handler payload. May be nil, an object, a list,
	// or a per-field validation message map.
	Data any `json:"data"`
}

// TokenResponse is the payload returned by the login endpoint.
type TokenResponse struct {
	// Token is the compact signed token string (header.claims.signature).
	Token string `json:"token"`

	// User is the sanitized account the token was issued for.
	User User `json:"user"`
}

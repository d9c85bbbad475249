package common

const (
	// AuthorizationHeaderName carries the bearer session token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"

	// SupportEmail is shown to users who try to sign up.
	SupportEmail = "info.salemerge@gmail.com"
)

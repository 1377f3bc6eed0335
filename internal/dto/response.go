package dto

// StatusResponse is the generic {status, message} body used by sign-up and
// verify-user, both of which are reachable from non-programmatic clients.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TokenPairResponse is returned by sign-in and refresh-token on success.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenStateResponse carries token-flow outcomes in-band. Callers branch on
// IsValid instead of parsing failure types; this is a deliberate contract.
type TokenStateResponse struct {
	IsValid    bool   `json:"is_valid"`
	IsVerified bool   `json:"is_verified,omitempty"`
	Message    string `json:"message"`
}

// DescriptionResponse is returned for a single processed image.
type DescriptionResponse struct {
	Description string `json:"description"`
}

// DescriptionsResponse is returned for a batch, ordered as uploaded.
type DescriptionsResponse struct {
	Descriptions []string `json:"descriptions"`
}

// ErrorResponse represents an error body at the HTTP boundary.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

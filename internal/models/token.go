package models

// TokenPair is the ordered (access, refresh) tuple bound to a single user
// session. At most one live pair exists per user; the cache entry under
// jwt:<email> is the authority.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

package service

import "errors"

// Submission flow errors. Handlers map these onto response codes and
// localized messages with errors.Is.
var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidEmail    = errors.New("email is not a valid school address")
	ErrCodeInvalid     = errors.New("verification code invalid or expired")
	ErrCodeTooFrequent = errors.New("verification code requested too frequently")
	ErrRateLimited     = errors.New("submission rate limit reached")
	ErrVulgarArtist    = errors.New("vulgar language in artist name")
	ErrVulgarTitle     = errors.New("vulgar language in title")
	ErrTrackNotFound   = errors.New("track not found in catalog")
	ErrExplicitContent = errors.New("track is flagged explicit")
	ErrPlaylistAppend  = errors.New("playlist append failed")
)

// Infrastructure and auth errors.
var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrEmailNotConfigured = errors.New("email service not configured")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha verification failed")
)

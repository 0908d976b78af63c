package entities

import (
	"fmt"
	"net/http"
	"time"
)

// Token is an installation-scoped access token. Tokens are values: a refresh
// produces a new Token and never changes an existing one.
type Token struct {
	Value          string
	ExpiresAt      time.Time
	InstallationID int64
}

// IsZero reports whether the token was never minted.
func (t Token) IsZero() bool { return t.Value == "" }

// IsExpired reports whether now is at or past the token expiry.
func (t Token) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsUsable reports whether the token can still be presented at now, keeping
// a safety margin of skew before expiry.
func (t Token) IsUsable(now time.Time, skew time.Duration) bool {
	return !t.IsZero() && !t.IsExpired(now.Add(skew))
}

// DefaultRetryAttempts is the number of authentication retries when none is configured.
const DefaultRetryAttempts = 3

// RetryPolicy bounds how many times an authentication rejection may be
// answered with a token refresh.
type RetryPolicy struct {
	Attempts int
	// Success decides whether a status code completes the request. Defaults to 2xx.
	Success func(statusCode int) bool
}

// NewRetryPolicy returns a policy with the given budget, or an error if it is not positive.
func NewRetryPolicy(attempts int) (RetryPolicy, error) {
	if attempts <= 0 {
		return RetryPolicy{}, fmt.Errorf("retry budget must be positive, got %d", attempts)
	}
	return RetryPolicy{Attempts: attempts}, nil
}

// IsSuccess applies the success predicate to a status code.
func (p RetryPolicy) IsSuccess(statusCode int) bool {
	if p.Success != nil {
		return p.Success(statusCode)
	}
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

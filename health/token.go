package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIndicatorConfig configures the credential token indicator.
type TokenIndicatorConfig struct {
	// Name overrides the indicator name.
	// Default: "credential"
	Name string

	// Token returns the current service credential (a JWT). Called on
	// every check so rotated credentials are picked up.
	Token func(ctx context.Context) (string, error)

	// ExpiryMargin reports unhealthy when the token expires within this
	// margin, giving rotation a head start before requests actually fail.
	// Default: 0 (only already-expired tokens are unhealthy)
	ExpiryMargin time.Duration
}

// TokenIndicator reports the health of a service credential: unhealthy
// when the JWT is missing, malformed, expired, or inside the configured
// expiry margin. The signature is not verified; liveness of the
// credential is the concern, not its authenticity.
type TokenIndicator struct {
	config TokenIndicatorConfig
}

// NewTokenIndicator creates a new credential token indicator.
func NewTokenIndicator(config TokenIndicatorConfig) *TokenIndicator {
	if config.Name == "" {
		config.Name = "credential"
	}
	return &TokenIndicator{config: config}
}

// Name returns the name of this indicator.
func (t *TokenIndicator) Name() string {
	return t.config.Name
}

// Check performs the credential health determination.
func (t *TokenIndicator) Check(ctx context.Context, inform Callback) {
	if t.config.Token == nil {
		inform(Unhealthy(errors.New("no token source configured")))
		return
	}

	raw, err := t.config.Token(ctx)
	if err != nil {
		inform(Unhealthy(fmt.Errorf("token source: %w", err)))
		return
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		inform(Unhealthy(fmt.Errorf("malformed token: %w", err)))
		return
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		inform(Unhealthy(fmt.Errorf("invalid exp claim: %w", err)))
		return
	}
	if exp == nil {
		// No expiry means the credential never goes stale.
		inform(Healthy())
		return
	}

	remaining := time.Until(exp.Time)
	details := map[string]any{
		"expires_at":   exp.Time.UTC().Format(time.RFC3339),
		"remaining_ms": remaining.Milliseconds(),
	}

	if remaining <= 0 {
		inform(Unhealthy(errors.New("token expired")).WithDetails(details))
		return
	}
	if remaining <= t.config.ExpiryMargin {
		inform(Unhealthy(
			fmt.Errorf("token expires within margin: %s remaining", remaining.Round(time.Millisecond)),
		).WithDetails(details))
		return
	}

	inform(Healthy().WithDetails(details))
}

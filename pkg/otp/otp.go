// Package otp sends and verifies one-time passcodes through a pluggable provider.
package otp

import (
	"context"
	"errors"
)

// Provider delivers a code to a phone and later checks a submitted code against the returned order id.
// Phones are in international format (+9647XXXXXXXXX).
type Provider interface {
	Send(ctx context.Context, phone string) (orderID string, err error)
	Verify(ctx context.Context, orderID, code string) (bool, error)
}

var ErrProviderUnavailable = errors.New("otp provider unavailable")

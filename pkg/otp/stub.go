package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"
)

const stubPrefix = "dev-"

// StubProvider never leaves the process. The order id embeds the code:
// dev-<phone>-<6 digit code>-<unix ts>. For development and tests only.
type StubProvider struct {
	// Optional fixed pair: Send to TestPhone always issues TestCode.
	TestPhone string
	TestCode  string
	now       func() time.Time
}

func NewStubProvider(testPhone, testCode string) *StubProvider {
	return &StubProvider{TestPhone: testPhone, TestCode: testCode, now: time.Now}
}

func (s *StubProvider) Send(ctx context.Context, phone string) (string, error) {
	code := s.TestCode
	if s.TestPhone == "" || phone != s.TestPhone || code == "" {
		n, err := rand.Int(rand.Reader, big.NewInt(900000))
		if err != nil {
			return "", err
		}
		code = fmt.Sprintf("%06d", n.Int64()+100000)
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	orderID := fmt.Sprintf("%s%s-%s-%d", stubPrefix, phone, code, now().Unix())
	log.Printf("[otp] stub code for %s: %s", phone, code)
	return orderID, nil
}

func (s *StubProvider) Verify(ctx context.Context, orderID, code string) (bool, error) {
	embedded, ok := StubCode(orderID)
	if !ok {
		return false, nil
	}
	return code != "" && embedded == code, nil
}

// StubCode extracts the code from a stub order id.
func StubCode(orderID string) (string, bool) {
	if !strings.HasPrefix(orderID, stubPrefix) {
		return "", false
	}
	parts := strings.Split(orderID, "-")
	// dev, phone, code, ts
	if len(parts) < 4 {
		return "", false
	}
	return parts[len(parts)-2], true
}

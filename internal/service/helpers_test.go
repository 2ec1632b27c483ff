package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/config"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/lock"
)

var fixedNow = time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Timeout: 5 * time.Second},
		Business: config.BusinessConfig{Timezone: "UTC", ChargeTTL: 24 * time.Hour},
	}
}

type stubCodes struct {
	mu   sync.Mutex
	err  error
	keys []string
}

func (s *stubCodes) Generate(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	return "qr:" + key, nil
}

type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequentialIDs) Next(loanID uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("TXN-%s-%d", loanID, s.n)
}

type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, key string) (func(), error) {
	return nil, errors.Join(lock.ErrNotAcquired, context.DeadlineExceeded)
}

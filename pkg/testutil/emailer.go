package testutil

import (
	"context"
	"sync"
)

// MockEmailer collects sent emails. Safe for the background sends the auth
// domain fires.
type MockEmailer struct {
	mutex          sync.Mutex
	WelcomeSent    []string
	ResetSent      []string
	LastResetToken string
}

func NewMockEmailer() *MockEmailer {
	return &MockEmailer{}
}

func (e *MockEmailer) SendWelcome(ctx context.Context, name, to string) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.WelcomeSent = append(e.WelcomeSent, to)
	return nil
}

func (e *MockEmailer) SendPasswordReset(ctx context.Context, name, to, resetToken string) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.ResetSent = append(e.ResetSent, to)
	e.LastResetToken = resetToken
	return nil
}

func (e *MockEmailer) WelcomeCount() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	return len(e.WelcomeSent)
}

func (e *MockEmailer) ResetCount() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	return len(e.ResetSent)
}

func (e *MockEmailer) LastReset() string {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	return e.LastResetToken
}

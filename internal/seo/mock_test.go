package seo

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// mockGateway answers each call with a handler chosen by prompt content.
type mockGateway struct {
	mu         sync.Mutex
	calls      []mockCall
	respond    func(system, user string) (string, error)
	configured bool
}

type mockCall struct {
	System      string
	User        string
	Temperature float64
}

func newMockGateway(respond func(system, user string) (string, error)) *mockGateway {
	return &mockGateway{respond: respond, configured: true}
}

func (m *mockGateway) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, mockCall{System: system, User: user, Temperature: temperature})
	m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.respond(system, user)
}

func (m *mockGateway) Configured() bool {
	return m.configured
}

func (m *mockGateway) Calls() []mockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockGateway) countCalls(substr string) int {
	n := 0
	for _, c := range m.Calls() {
		if strings.Contains(c.User, substr) {
			n++
		}
	}
	return n
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func isTopUp(user string) bool {
	return strings.Contains(user, "additional relevant and trending tags")
}

func isSEO(user string) bool {
	return strings.Contains(user, "'tags', 'description', 'timestamps'") || strings.Contains(user, "SEO-optimized description (400-500 words)")
}

func isThumbnail(user string) bool {
	return strings.Contains(user, "thumbnail concepts")
}

package testutil

import (
	"context"
	"sync"

	"github.com/greenquest-lab/backend/pkg/errorx"
	"github.com/greenquest-lab/backend/pkg/pubsub"
)

// MockPublisher records the topic of every publish call. Without PublishFunc
// every call fails, like a broker which is down.
type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	mu     sync.Mutex
	topics []string
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	m.mu.Lock()
	m.topics = append(m.topics, topic)
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return errorx.New(errorx.Unavailable, "Broker is not available")
}

func (m *MockPublisher) Topics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.topics...)
}

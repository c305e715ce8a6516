package feed_test

import (
	"sync/atomic"

	"fairprice/backend/internal/models"
)

type MockClient struct {
	id          string
	business    string
	RecvChannel chan models.Report
	closed      atomic.Bool
}

func newMockClient(id, business string, buffer int) *MockClient {
	return &MockClient{
		id:          id,
		business:    business,
		RecvChannel: make(chan models.Report, buffer),
	}
}

func (c *MockClient) GetClientID() string {
	return c.id
}

func (c *MockClient) GetBusiness() string {
	return c.business
}

func (c *MockClient) GetSendChannel() chan<- models.Report {
	return c.RecvChannel
}

func (c *MockClient) Close() {
	c.closed.Store(true)
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) IsClosed() bool {
	return c.closed.Load()
}

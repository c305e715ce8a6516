// Package feed fans newly appended reports out to live subscribers.
package feed

import (
	"context"
	"errors"

	"fairprice/backend/internal/models"

	"github.com/sirupsen/logrus"
)

var ErrHubStopped = errors.New("feed hub stopped")

// ManagerService is the feed hub. Run owns the client map; everything else
// talks to it through channels.
type ManagerService struct {
	Clients map[string]Client

	// Channels
	BroadcastCh  chan models.Report
	RegisterCh   chan Client
	UnregisterCh chan Client

	Logger logrus.FieldLogger
	done   chan struct{}
}

func NewManagerService(logger logrus.FieldLogger) *ManagerService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ManagerService{
		Clients:      make(map[string]Client),
		BroadcastCh:  make(chan models.Report, 64),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		Logger:       logger,
		done:         make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is canceled, then
// closes every remaining client.
func (m *ManagerService) Run(ctx context.Context) {
	defer close(m.done)

	for {
		select {
		case <-ctx.Done():
			for id, client := range m.Clients {
				delete(m.Clients, id)
				client.Close()
			}
			return

		case client := <-m.RegisterCh:
			m.Clients[client.GetClientID()] = client
			m.Logger.WithField("client", client.GetClientID()).Debug("feed client registered")

		case client := <-m.UnregisterCh:
			if _, ok := m.Clients[client.GetClientID()]; ok {
				delete(m.Clients, client.GetClientID())
				client.Close()
			}

		case rep := <-m.BroadcastCh:
			for id, client := range m.Clients {
				if b := client.GetBusiness(); b != "" && b != rep.BusinessName {
					continue
				}
				select {
				case client.GetSendChannel() <- rep:
				default:
					// slow client
					delete(m.Clients, id)
					client.Close()
					m.Logger.WithField("client", id).Warn("feed client dropped")
				}
			}
		}
	}
}

// Register hands a client to the hub. It returns false if the hub has stopped.
func (m *ManagerService) Register(client Client) bool {
	select {
	case m.RegisterCh <- client:
		return true
	case <-m.done:
		return false
	}
}

// Unregister removes a client; it is a no-op once the hub has stopped.
func (m *ManagerService) Unregister(client Client) {
	select {
	case m.UnregisterCh <- client:
	case <-m.done:
	}
}

// PublishReport queues a report for every matching client.
func (m *ManagerService) PublishReport(ctx context.Context, rep models.Report) error {
	select {
	case m.BroadcastCh <- rep:
		return nil
	case <-m.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (m *ManagerService) Done() <-chan struct{} {
	return m.done
}

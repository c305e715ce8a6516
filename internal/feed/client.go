package feed

import "fairprice/backend/internal/models"

// Client is the interface for any subscriber of the report feed (e.g. a
// WebSocket connection). The hub owns the client once it is registered.
type Client interface {
	// GetClientID returns the unique identifier of the subscription.
	GetClientID() string
	// GetBusiness returns the business name the client follows, or "" for
	// every business.
	GetBusiness() string

	// GetSendChannel returns the channel the hub delivers reports on.
	GetSendChannel() chan<- models.Report

	// Run starts the client's pumps.
	Run()
	// Close shuts the send channel. Only the hub calls it.
	Close()
}

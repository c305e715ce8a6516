package telegram

import (
	"strconv"

	"fairprice/backend/internal/config"
	"fairprice/backend/internal/localization"
	"fairprice/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Client implements feed.Client for a chat that follows one business.
type Client struct {
	ChatID    int64
	Business  string
	Lang      string
	Send      chan models.Report
	Sender    Sender
	Localizer *localization.Localizer
	Logger    logrus.FieldLogger
}

func NewClient(chatID int64, business, lang string, sender Sender, loc *localization.Localizer, logger logrus.FieldLogger) *Client {
	return &Client{
		ChatID:    chatID,
		Business:  business,
		Lang:      lang,
		Send:      make(chan models.Report, 10),
		Sender:    sender,
		Localizer: loc,
		Logger:    logger,
	}
}

func (c *Client) GetClientID() string                  { return "tg-" + strconv.FormatInt(c.ChatID, 10) }
func (c *Client) GetBusiness() string                  { return c.Business }
func (c *Client) GetSendChannel() chan<- models.Report { return c.Send }

// Run starts the write pump. Incoming messages are handled by BotService.
func (c *Client) Run() {
	go c.writePump()
}

// Close closes the Send channel
func (c *Client) Close() {
	close(c.Send)
}

// writePump forwards every report from Send to the chat.
func (c *Client) writePump() {
	for rep := range c.Send {
		text := c.Localizer.Format(c.Lang, "bot_new_report", formatReport(rep))
		if _, err := c.Sender.Send(tgbotapi.NewMessage(c.ChatID, text)); err != nil {
			config.LogError(c.Logger, moduleName, "writePump", "forward report", c.ChatID, err)
		}
	}
	c.Logger.WithField("chat", c.ChatID).Debug("telegram feed client stopped")
}

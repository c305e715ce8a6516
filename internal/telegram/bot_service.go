// Package telegram is the chat front end of the catalog. It answers search
// commands, walks users through submitting a report, and forwards live
// reports to chats that follow a business.
package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"fairprice/backend/internal/catalog"
	"fairprice/backend/internal/config"
	"fairprice/backend/internal/feed"
	"fairprice/backend/internal/localization"
	"fairprice/backend/internal/models"
	"fairprice/backend/internal/report"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	maxListed  = 10
	maxThread  = 5
	kindPrefix = "kind_"
	moduleName = "telegram"
)

// Sender is the part of tgbotapi.BotAPI the bot uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// CatalogSource returns the current ordered catalog.
type CatalogSource interface {
	Get() ([]models.Business, error)
}

// pendingReport is a /report conversation waiting for its kind or body.
type pendingReport struct {
	Business string
	Kind     string
}

// BotService receives Telegram updates and answers them from the catalog and
// the report log. Updates are handled on one goroutine, so the per-chat maps
// need no locking.
type BotService struct {
	BotAPI    *tgbotapi.BotAPI
	Sender    Sender
	Catalog   CatalogSource
	Reports   *report.Service
	Hub       *feed.ManagerService
	Localizer *localization.Localizer
	Logger    logrus.FieldLogger

	pending   map[int64]*pendingReport
	followers map[int64]*Client
}

// NewBotService authorizes against the Bot API. hub may be nil, which turns
// /follow off.
func NewBotService(token string, debug bool, cat CatalogSource, reports *report.Service, hub *feed.ManagerService, loc *localization.Localizer, logger logrus.FieldLogger) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = debug

	s := newBotService(bot, cat, reports, hub, loc, logger)
	s.BotAPI = bot
	s.Logger.WithField("account", bot.Self.UserName).Info("telegram bot authorized")
	return s, nil
}

func newBotService(sender Sender, cat CatalogSource, reports *report.Service, hub *feed.ManagerService, loc *localization.Localizer, logger logrus.FieldLogger) *BotService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &BotService{
		Sender:    sender,
		Catalog:   cat,
		Reports:   reports,
		Hub:       hub,
		Localizer: loc,
		Logger:    logger,
		pending:   make(map[int64]*pendingReport),
		followers: make(map[int64]*Client),
	}
}

// Run is the main loop for receiving Telegram updates. It returns when ctx
// is canceled.
func (s *BotService) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.BotAPI.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			s.BotAPI.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			s.handleUpdate(ctx, update)
		}
	}
}

func (s *BotService) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		if cq.Message == nil || cq.From == nil {
			return
		}
		s.handleCallbackQuery(cq.Message.Chat.ID, cq.ID, cq.Data, s.Localizer.Match(cq.From.LanguageCode))

	case update.Message != nil:
		msg := update.Message
		if msg.From == nil {
			return
		}
		lang := s.Localizer.Match(msg.From.LanguageCode)
		if msg.IsCommand() {
			s.handleCommand(ctx, msg.Chat.ID, lang, msg.Command(), strings.TrimSpace(msg.CommandArguments()))
			return
		}
		s.handleText(ctx, msg.Chat.ID, nickname(msg.From.UserName), lang, msg.Text)
	}
}

// nickname is the Telegram username, or the default nickname of the web form.
func nickname(userName string) string {
	if userName == "" {
		return config.DefaultNickname
	}
	return userName
}

func (s *BotService) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := s.Sender.Send(msg); err != nil {
		config.LogError(s.Logger, moduleName, "send", "send message", chatID, err)
	}
}

func (s *BotService) handleCommand(ctx context.Context, chatID int64, lang, command, args string) {
	switch command {
	case "start", "help":
		s.send(chatID, s.Localizer.GetString(lang, "bot_welcome"))
	case "search":
		s.handleSearch(chatID, lang, args)
	case "district":
		s.handleDistrict(chatID, lang, args)
	case "info":
		s.handleInfo(ctx, chatID, lang, args)
	case "report":
		s.handleReportCommand(chatID, lang, args)
	case "follow":
		s.handleFollow(chatID, lang, args)
	case "unfollow":
		s.handleUnfollow(chatID, lang)
	default:
		s.send(chatID, s.Localizer.GetString(lang, "bot_unknown_command"))
	}
}

// handleText completes a pending report with the message as its body. Text
// outside a report conversation is treated as a search.
func (s *BotService) handleText(ctx context.Context, chatID int64, nick, lang, text string) {
	p, ok := s.pending[chatID]
	if !ok || p.Kind == "" {
		if strings.TrimSpace(text) != "" {
			s.handleSearch(chatID, lang, strings.TrimSpace(text))
		}
		return
	}

	rep, err := s.Reports.Submit(ctx, p.Business, nick, p.Kind, text)
	if errors.Is(err, report.ErrEmptyBody) {
		s.send(chatID, s.Localizer.GetString(lang, "empty_body"))
		return
	}
	if errors.Is(err, report.ErrBodyTooLong) {
		s.send(chatID, s.Localizer.GetString(lang, "body_too_long"))
		return
	}
	if err != nil {
		s.send(chatID, s.Localizer.GetString(lang, "report_failed"))
		return
	}

	delete(s.pending, chatID)
	s.send(chatID, s.Localizer.Format(lang, "report_saved", rep.BusinessName))
}

// catalog loads the catalog, telling the chat when it is unavailable.
func (s *BotService) catalog(chatID int64, lang string) ([]models.Business, bool) {
	list, err := s.Catalog.Get()
	if err == nil {
		return list, true
	}
	config.LogError(s.Logger, moduleName, "catalog", "load catalog", chatID, err)
	if errors.Is(err, catalog.ErrCatalogNotFound) {
		s.send(chatID, s.Localizer.GetString(lang, "catalog_missing"))
	} else {
		s.send(chatID, s.Localizer.GetString(lang, "catalog_unreadable"))
	}
	return nil, false
}

func (s *BotService) handleSearch(chatID int64, lang, keyword string) {
	if keyword == "" {
		s.send(chatID, s.Localizer.GetString(lang, "bot_search_usage"))
		return
	}
	list, ok := s.catalog(chatID, lang)
	if !ok {
		return
	}
	s.send(chatID, s.formatList(lang, catalog.Filter(list, catalog.Query{Keyword: keyword})))
}

func (s *BotService) handleDistrict(chatID int64, lang, district string) {
	if district == "" {
		s.send(chatID, s.Localizer.GetString(lang, "bot_district_usage"))
		return
	}
	if !catalog.IsDistrict(district) {
		s.send(chatID, s.Localizer.Format(lang, "bot_unknown_district", district))
		return
	}
	list, ok := s.catalog(chatID, lang)
	if !ok {
		return
	}
	s.send(chatID, s.formatList(lang, catalog.Filter(list, catalog.Query{District: district})))
}

func (s *BotService) handleInfo(ctx context.Context, chatID int64, lang, name string) {
	if name == "" {
		s.send(chatID, s.Localizer.GetString(lang, "bot_info_usage"))
		return
	}
	list, ok := s.catalog(chatID, lang)
	if !ok {
		return
	}
	b, found := catalog.Find(list, name)
	if !found {
		s.send(chatID, s.Localizer.Format(lang, "unknown_business", name))
		return
	}

	thread, err := s.Reports.Thread(ctx, b.Name)
	if err != nil {
		config.LogError(s.Logger, moduleName, "handleInfo", "load thread", b.Name, err)
		thread = nil
	}
	s.send(chatID, s.formatCard(lang, b, thread))
}

// handleReportCommand starts a report conversation: the kind is chosen on an
// inline keyboard, then the next text message is the body.
func (s *BotService) handleReportCommand(chatID int64, lang, name string) {
	if name == "" {
		s.send(chatID, s.Localizer.GetString(lang, "bot_report_usage"))
		return
	}
	list, ok := s.catalog(chatID, lang)
	if !ok {
		return
	}
	b, found := catalog.Find(list, name)
	if !found {
		s.send(chatID, s.Localizer.Format(lang, "unknown_business", name))
		return
	}

	s.pending[chatID] = &pendingReport{Business: b.Name}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(config.ReportKinds))
	for i, kind := range config.ReportKinds {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(kind, kindPrefix+strconv.Itoa(i)),
		))
	}
	msg := tgbotapi.NewMessage(chatID, s.Localizer.Format(lang, "bot_choose_kind", b.Name))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := s.Sender.Send(msg); err != nil {
		config.LogError(s.Logger, moduleName, "handleReportCommand", "send keyboard", chatID, err)
	}
}

func (s *BotService) handleCallbackQuery(chatID int64, queryID, data, lang string) {
	// Answer the callback query to stop the loading animation
	if _, err := s.Sender.Request(tgbotapi.NewCallback(queryID, "")); err != nil {
		config.LogError(s.Logger, moduleName, "handleCallbackQuery", "answer callback", chatID, err)
	}

	if !strings.HasPrefix(data, kindPrefix) {
		return
	}
	p, ok := s.pending[chatID]
	if !ok {
		return
	}
	i, err := strconv.Atoi(strings.TrimPrefix(data, kindPrefix))
	if err != nil || i < 0 || i >= len(config.ReportKinds) {
		return
	}
	p.Kind = config.ReportKinds[i]
	s.send(chatID, s.Localizer.Format(lang, "bot_enter_body", p.Kind))
}

func (s *BotService) handleFollow(chatID int64, lang, name string) {
	if s.Hub == nil {
		s.send(chatID, s.Localizer.GetString(lang, "bot_feed_unavailable"))
		return
	}
	if name == "" {
		s.send(chatID, s.Localizer.GetString(lang, "bot_follow_usage"))
		return
	}
	list, ok := s.catalog(chatID, lang)
	if !ok {
		return
	}
	b, found := catalog.Find(list, name)
	if !found {
		s.send(chatID, s.Localizer.Format(lang, "unknown_business", name))
		return
	}

	if old, ok := s.followers[chatID]; ok {
		s.Hub.Unregister(old)
	}
	client := NewClient(chatID, b.Name, lang, s.Sender, s.Localizer, s.Logger)
	if !s.Hub.Register(client) {
		delete(s.followers, chatID)
		s.send(chatID, s.Localizer.GetString(lang, "bot_feed_unavailable"))
		return
	}
	s.followers[chatID] = client
	client.Run()
	s.send(chatID, s.Localizer.Format(lang, "bot_following", b.Name))
}

func (s *BotService) handleUnfollow(chatID int64, lang string) {
	client, ok := s.followers[chatID]
	if !ok {
		s.send(chatID, s.Localizer.GetString(lang, "bot_not_following"))
		return
	}
	delete(s.followers, chatID)
	if s.Hub != nil {
		s.Hub.Unregister(client)
	}
	s.send(chatID, s.Localizer.GetString(lang, "bot_unfollowed"))
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/telegram"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/notification"
	confirmBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/confirm_booking"
	rejectBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/reject_booking"
)

const (
	defaultPollTimeout = 30 * time.Second
	defaultRetryDelay  = 3 * time.Second
)

// Bot принимает команды администратора из Telegram через long polling.
// /start, /getid и /language доступны любому чату, команды решений только чатам из списка администраторов.
// Язык ответов хранится в памяти по чатам и сбрасывается при перезапуске.
type Bot struct {
	client      TelegramClient
	confirm     ConfirmBookingUseCase
	reject      RejectBookingUseCase
	pending     PendingService
	adminChats  map[int64]struct{}
	pollTimeout time.Duration
	retryDelay  time.Duration
	defaultLang string
	logger      Logger

	mu        sync.RWMutex
	languages map[int64]string
}

// NewBot создает диспетчер команд. pollTimeout <= 0 заменяется значением по умолчанию,
// неизвестный defaultLang - языком domain.DefaultLanguage.
func NewBot(
	client TelegramClient,
	confirm ConfirmBookingUseCase,
	reject RejectBookingUseCase,
	pending PendingService,
	adminChatIDs []int64,
	pollTimeout time.Duration,
	defaultLang string,
	logger Logger,
) *Bot {
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}
	if _, ok := translations[defaultLang]; !ok {
		defaultLang = domain.DefaultLanguage
	}

	admins := make(map[int64]struct{}, len(adminChatIDs))
	for _, id := range adminChatIDs {
		admins[id] = struct{}{}
	}

	return &Bot{
		client:      client,
		confirm:     confirm,
		reject:      reject,
		pending:     pending,
		adminChats:  admins,
		pollTimeout: pollTimeout,
		retryDelay:  defaultRetryDelay,
		defaultLang: defaultLang,
		logger:      logger,
		languages:   make(map[int64]string),
	}
}

// Run читает обновления до отмены ctx. Ошибки Bot API логируются, опрос продолжается после паузы.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Bot: polling started (admins=%d, timeout=%s)", len(b.adminChats), b.pollTimeout)

	var offset int64
	for {
		if ctx.Err() != nil {
			b.logger.Info("Bot: polling stopped")
			return nil
		}

		updates, err := b.client.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			b.logger.Warn("Bot: failed to get updates: %v", err)

			select {
			case <-ctx.Done():
			case <-time.After(b.retryDelay):
			}
			continue
		}

		for _, upd := range updates {
			offset = int64(upd.UpdateID) + 1
			b.HandleUpdate(ctx, upd)
		}
	}
}

// HandleUpdate обрабатывает одно обновление и отправляет ответ, если он есть
func (b *Bot) HandleUpdate(ctx context.Context, upd telegram.Update) {
	msg := upd.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return
	}

	reply, ok := b.Reply(ctx, msg.Chat.ID, msg.Text)
	if !ok {
		return
	}

	if err := b.client.SendMessage(ctx, msg.Chat.ID, reply); err != nil {
		b.logger.Error("Bot: failed to reply to chat %d: %v", msg.Chat.ID, err)
	}
}

// Reply возвращает ответ на текст из чата на языке этого чата. ok=false, если текст не является командой бота.
func (b *Bot) Reply(ctx context.Context, chatID int64, text string) (string, bool) {
	lang := b.Language(chatID)
	t := textsFor(lang)

	switch commandName(text) {
	case "start":
		if b.isAdmin(chatID) {
			return t.welcomeAdmin, true
		}
		return fmt.Sprintf(t.welcomeGuest, chatID), true

	case "getid":
		return fmt.Sprintf(t.chatID, chatID), true

	case "language":
		return b.setLanguage(chatID, text), true

	case "pending":
		if !b.authorize(chatID, text) {
			return t.unauthorized, true
		}
		return b.listPending(ctx, lang), true

	case string(domain.ActionConfirm), string(domain.ActionReject):
		if !b.authorize(chatID, text) {
			return t.unauthorized, true
		}
		return b.decide(ctx, lang, text), true

	default:
		return "", false
	}
}

// Language язык ответов для чата
func (b *Bot) Language(chatID int64) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if lang, ok := b.languages[chatID]; ok {
		return lang
	}
	return b.defaultLang
}

// setLanguage "/language uz". Без аргумента возвращает подсказку на текущем языке чата.
func (b *Bot) setLanguage(chatID int64, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 1 {
		return textsFor(b.Language(chatID)).languagePrompt
	}

	lang := strings.ToLower(fields[1])
	t, ok := translations[lang]
	if !ok || len(fields) > 2 {
		return msgInvalidLanguage
	}

	b.mu.Lock()
	b.languages[chatID] = lang
	b.mu.Unlock()

	b.logger.Info("Bot: chat %d switched language to %s", chatID, lang)
	return t.languageSet
}

func (b *Bot) isAdmin(chatID int64) bool {
	_, ok := b.adminChats[chatID]
	return ok
}

func (b *Bot) authorize(chatID int64, text string) bool {
	if b.isAdmin(chatID) {
		return true
	}
	b.logger.Warn("Bot: unauthorized command from chat %d: %q", chatID, text)
	return false
}

func (b *Bot) listPending(ctx context.Context, lang string) string {
	reqs, err := b.pending.ListDomain(ctx, 0)
	if err != nil {
		b.logger.Error("Bot: /pending failed: %v", err)
		return textsFor(lang).failed
	}
	return notification.PendingList(lang, reqs)
}

// decide разбирает команду решения и применяет ее. Ошибка разбора означает, что ничего не изменено.
func (b *Bot) decide(ctx context.Context, lang, text string) string {
	cmd, err := domain.ParseDecisionCommand(text)
	if err != nil {
		b.logger.Warn("Bot: invalid command %q: %v", text, err)
		return fmt.Sprintf(textsFor(lang).usage, domain.CommandUsage(actionOf(text)))
	}

	if cmd.Action == domain.ActionConfirm {
		return b.confirmRequest(ctx, lang, cmd)
	}
	return b.rejectRequest(ctx, lang, cmd)
}

func (b *Bot) confirmRequest(ctx context.Context, lang string, cmd *domain.DecisionCommand) string {
	t := textsFor(lang)

	result, err := b.confirm.Execute(ctx, &confirmBooking.Request{
		RoomID:   cmd.RoomID,
		CheckIn:  cmd.CheckIn,
		CheckOut: cmd.CheckOut,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrInvalidInput):
			return fmt.Sprintf(t.usage, domain.CommandUsage(domain.ActionConfirm))
		case errors.Is(err, confirmBooking.ErrRoomNotFound):
			return t.roomNotFound
		case errors.Is(err, confirmBooking.ErrPendingNotFound):
			return t.notFound
		case errors.Is(err, confirmBooking.ErrAlreadyBooked):
			return fmt.Sprintf(t.alreadyBooked, domain.FormatDecisionCommand(domain.ActionReject, cmd.RoomID, cmd.Stay()))
		default:
			b.logger.Error("Bot: /confirm %s %s failed: %v", cmd.RoomID, cmd.Stay(), err)
			return t.failed
		}
	}

	return "✅ " + notification.Confirmed(lang, result.Request)
}

func (b *Bot) rejectRequest(ctx context.Context, lang string, cmd *domain.DecisionCommand) string {
	t := textsFor(lang)

	result, err := b.reject.Execute(ctx, &rejectBooking.Request{
		RoomID:   cmd.RoomID,
		CheckIn:  cmd.CheckIn,
		CheckOut: cmd.CheckOut,
	})
	if err != nil {
		switch {
		case errors.Is(err, rejectBooking.ErrInvalidInput):
			return fmt.Sprintf(t.usage, domain.CommandUsage(domain.ActionReject))
		case errors.Is(err, rejectBooking.ErrPendingNotFound):
			return t.notFound
		default:
			b.logger.Error("Bot: /reject %s %s failed: %v", cmd.RoomID, cmd.Stay(), err)
			return t.failed
		}
	}

	return "🚫 " + notification.Rejected(lang, result.Request)
}

// commandName "/Confirm@hotel_bot 1 2024-06-01" -> "confirm"
func commandName(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	name := strings.TrimPrefix(fields[0], "/")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(name)
}

func actionOf(text string) domain.CommandAction {
	if commandName(text) == string(domain.ActionReject) {
		return domain.ActionReject
	}
	return domain.ActionConfirm
}

package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/telegram"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/pending"
	confirmBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/confirm_booking"
	rejectBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/reject_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

const (
	adminChat = int64(1001)
	guestChat = int64(2002)
)

var (
	june1 = types.MustParseDate("2024-06-01")
	ru    = translations[domain.LangRU]
	uz    = translations[domain.LangUZ]
)

type sentMessage struct {
	chatID int64
	text   string
}

// fakeClient отдает заданные обновления один раз, затем отменяет контекст
type fakeClient struct {
	updates []telegram.Update
	offsets []int64
	sent    []sentMessage
	cancel  context.CancelFunc
}

func (c *fakeClient) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]telegram.Update, error) {
	c.offsets = append(c.offsets, offset)
	if len(c.offsets) == 1 {
		return c.updates, nil
	}
	c.cancel()
	return nil, ctx.Err()
}

func (c *fakeClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	c.sent = append(c.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string) error { return nil }

type fixture struct {
	bot    *Bot
	store  *memory.Store
	client *fakeClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, store.Rooms().Upsert(context.Background(), &domain.Room{ID: "1", Capacity: 2}))

	m := (*metrics.Metrics)(nil)
	confirm := confirmBooking.NewUseCase(store.Rooms(), store.Pending(), store.TxManager(), m, time.Second, logger.Nop())
	reject := rejectBooking.NewUseCase(store.Pending(), store.TxManager(), m, time.Second, logger.Nop())
	pendingSvc := pending.NewService(store.Pending(), store.TxManager(), nopNotifier{}, m, 0, logger.Nop())

	client := &fakeClient{}
	return &fixture{
		bot:    NewBot(client, confirm, reject, pendingSvc, []int64{adminChat}, time.Second, domain.LangRU, logger.Nop()),
		store:  store,
		client: client,
	}
}

func (f *fixture) submit(t *testing.T, name string) *domain.PendingRequest {
	t.Helper()
	req, err := f.store.Pending().Create(context.Background(), &domain.PendingRequest{
		Name:   name,
		Phone:  "+998901234567",
		RoomID: "1",
		Stay:   domain.SingleNightStay(june1),
	})
	require.NoError(t, err)
	return req
}

func TestBot_Reply_Start(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reply, ok := f.bot.Reply(ctx, adminChat, "/start")
	require.True(t, ok)
	assert.Equal(t, ru.welcomeAdmin, reply)

	reply, ok = f.bot.Reply(ctx, guestChat, "/start")
	require.True(t, ok)
	assert.Contains(t, reply, "2002")

	reply, ok = f.bot.Reply(ctx, guestChat, "/getid@hotel_bot")
	require.True(t, ok)
	assert.Equal(t, "Ваш ID чата: 2002", reply)
}

func TestBot_Reply_IgnoresPlainText(t *testing.T) {
	f := newFixture(t)

	for _, text := range []string{"hello", "", "   ", "/unknown 1 2"} {
		_, ok := f.bot.Reply(context.Background(), adminChat, text)
		assert.False(t, ok, text)
	}
}

func TestBot_Reply_UnauthorizedChat(t *testing.T) {
	f := newFixture(t)
	req := f.submit(t, "Ann")
	ctx := context.Background()

	for _, text := range []string{"/confirm 1 2024-06-01", "/reject 1 2024-06-01", "/pending"} {
		reply, ok := f.bot.Reply(ctx, guestChat, text)
		require.True(t, ok)
		assert.Equal(t, ru.unauthorized, reply, text)
	}

	room, err := f.store.Rooms().GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, room.BookedDates)

	found, err := f.store.Pending().Find(ctx, domain.PendingFilter{RoomID: "1", CheckIn: june1})
	require.NoError(t, err)
	assert.Equal(t, req.ID, found.ID)
}

func TestBot_Reply_Usage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := map[string]string{
		"/confirm":                         "/confirm <roomId>",
		"/confirm 1":                       "/confirm <roomId>",
		"/confirm 1 01.06.2024":            "/confirm <roomId>",
		"/confirm 1 2024-06-02 2024-06-02": "/confirm <roomId>",
		"/reject 1 2024-06-01 x y":         "/reject <roomId>",
		"/REJECT@hotel_bot 1 not-a-date":   "/reject <roomId>",
	}
	for text, want := range tests {
		reply, ok := f.bot.Reply(ctx, adminChat, text)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(reply, "❌ Использование: "), text)
		assert.Contains(t, reply, want, text)
	}
}

func TestBot_Reply_ConfirmFlow(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "Ann")
	f.submit(t, "Bob")
	ctx := context.Background()

	reply, ok := f.bot.Reply(ctx, adminChat, "/confirm 1 2024-06-01")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(reply, "✅ "), reply)
	assert.Contains(t, reply, "Ann")

	room, err := f.store.Rooms().GetByID(ctx, "1")
	require.NoError(t, err)
	assert.True(t, room.BookedDates.Contains(june1))

	// Вторая заявка на ту же ночь больше не может быть подтверждена
	reply, _ = f.bot.Reply(ctx, adminChat, "/confirm 1 2024-06-01")
	assert.Equal(t, "⚠️ Номер уже забронирован на эти даты. Заявку можно только отклонить: /reject 1 2024-06-01", reply)

	reply, _ = f.bot.Reply(ctx, adminChat, "/reject 1 2024-06-01")
	assert.True(t, strings.HasPrefix(reply, "🚫 "), reply)
	assert.Contains(t, reply, "Bob")

	reply, _ = f.bot.Reply(ctx, adminChat, "/reject 1 2024-06-01")
	assert.Equal(t, ru.notFound, reply)

	_, err = f.store.Pending().Find(ctx, domain.PendingFilter{RoomID: "1", CheckIn: june1})
	assert.True(t, errors.Is(err, storage.ErrPendingRequestNotFound))
}

func TestBot_Reply_ConfirmUnknownRoom(t *testing.T) {
	f := newFixture(t)

	reply, _ := f.bot.Reply(context.Background(), adminChat, "/confirm 42 2024-06-01")
	assert.Equal(t, ru.roomNotFound, reply)
}

func TestBot_Reply_Pending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reply, _ := f.bot.Reply(ctx, adminChat, "/pending")
	assert.Equal(t, "Нет заявок, ожидающих решения", reply)

	f.submit(t, "Ann")
	reply, _ = f.bot.Reply(ctx, adminChat, "/pending")
	assert.Contains(t, reply, "/confirm 1 2024-06-01")
	assert.Contains(t, reply, "/reject 1 2024-06-01")
}

func TestBot_Run(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "Ann")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.client.cancel = cancel
	f.client.updates = []telegram.Update{
		{UpdateID: 10, Message: &telegram.Message{Chat: &telegram.Chat{ID: guestChat}, Text: "/getid"}},
		{UpdateID: 11, Message: &telegram.Message{Chat: &telegram.Chat{ID: adminChat}, Text: "просто текст"}},
		{UpdateID: 12},
		{UpdateID: 13, Message: &telegram.Message{Text: "/getid"}},
		{UpdateID: 14, Message: &telegram.Message{Chat: &telegram.Chat{ID: adminChat}, Text: "/confirm 1 2024-06-01"}},
	}

	require.NoError(t, f.bot.Run(ctx))

	assert.Equal(t, []int64{0, 15}, f.client.offsets)
	require.Len(t, f.client.sent, 2)
	assert.Equal(t, guestChat, f.client.sent[0].chatID)
	assert.Equal(t, "Ваш ID чата: 2002", f.client.sent[0].text)
	assert.Equal(t, adminChat, f.client.sent[1].chatID)
	assert.True(t, strings.HasPrefix(f.client.sent[1].text, "✅ "))
}

func TestBot_Reply_Language(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "Ann")
	ctx := context.Background()

	reply, ok := f.bot.Reply(ctx, adminChat, "/language")
	require.True(t, ok)
	assert.Equal(t, ru.languagePrompt, reply)

	reply, _ = f.bot.Reply(ctx, adminChat, "/language de")
	assert.Equal(t, msgInvalidLanguage, reply)
	assert.Equal(t, domain.LangRU, f.bot.Language(adminChat))

	reply, _ = f.bot.Reply(ctx, adminChat, "/language@hotel_bot UZ")
	assert.Equal(t, uz.languageSet, reply)
	assert.Equal(t, domain.LangUZ, f.bot.Language(adminChat))

	// язык хранится отдельно для каждого чата
	assert.Equal(t, domain.LangRU, f.bot.Language(guestChat))
	reply, _ = f.bot.Reply(ctx, guestChat, "/pending")
	assert.Equal(t, ru.unauthorized, reply)

	reply, _ = f.bot.Reply(ctx, adminChat, "/getid")
	assert.Equal(t, "Sizning chat ID: 1001", reply)

	reply, _ = f.bot.Reply(ctx, adminChat, "/confirm 1")
	assert.True(t, strings.HasPrefix(reply, "❌ Foydalanish: "), reply)

	reply, _ = f.bot.Reply(ctx, adminChat, "/confirm 1 2024-06-01")
	assert.True(t, strings.HasPrefix(reply, "✅ Bron tasdiqlandi"), reply)
	assert.Contains(t, reply, "(1 kecha)")

	reply, _ = f.bot.Reply(ctx, adminChat, "/reject 1 2024-06-01")
	assert.Equal(t, uz.notFound, reply)

	reply, _ = f.bot.Reply(ctx, adminChat, "/language ru")
	assert.Equal(t, ru.languageSet, reply)
	reply, _ = f.bot.Reply(ctx, adminChat, "/pending")
	assert.Equal(t, "Нет заявок, ожидающих решения", reply)
}

func TestNewBot_DefaultLanguage(t *testing.T) {
	m := (*metrics.Metrics)(nil)
	store := memory.NewStore()
	pendingSvc := pending.NewService(store.Pending(), store.TxManager(), nopNotifier{}, m, 0, logger.Nop())

	b := NewBot(&fakeClient{}, nil, nil, pendingSvc, nil, 0, domain.LangUZ, logger.Nop())
	assert.Equal(t, domain.LangUZ, b.Language(guestChat))

	reply, _ := b.Reply(context.Background(), guestChat, "/pending")
	assert.Equal(t, uz.unauthorized, reply)

	b = NewBot(&fakeClient{}, nil, nil, pendingSvc, nil, 0, "de", logger.Nop())
	assert.Equal(t, domain.DefaultLanguage, b.Language(guestChat))
}

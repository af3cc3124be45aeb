package telegram

import (
	"context"
	"fmt"
)

// Notifier доставляет сообщения в чаты администраторов
type Notifier struct {
	client  *Client
	chatIDs []int64
	log     Logger
}

// NewNotifier создает отправителя уведомлений администраторам
func NewNotifier(client *Client, chatIDs []int64, log Logger) *Notifier {
	return &Notifier{
		client:  client,
		chatIDs: chatIDs,
		log:     log,
	}
}

// Notify отправляет текст во все чаты администраторов.
// Успешно, если сообщение дошло хотя бы в один чат; иначе ErrUnavailable.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	if len(n.chatIDs) == 0 {
		return fmt.Errorf("%w: no admin chats configured", ErrUnavailable)
	}

	delivered := 0
	var lastErr error
	for _, chatID := range n.chatIDs {
		if err := n.client.SendMessage(ctx, chatID, text); err != nil {
			n.log.Warn("Failed to notify admin chat_id=%d: %v", chatID, err)
			lastErr = err
			continue
		}
		delivered++
	}

	if delivered == 0 {
		n.log.Error("Admin notification not delivered to any of %d chats: %v", len(n.chatIDs), lastErr)
		return fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	}

	n.log.Info("Admin notification delivered to %d/%d chats", delivered, len(n.chatIDs))
	return nil
}

package notification

import "context"

type Logger interface {
	Info(format string, v ...interface{})
}

// LogNotifier пишет уведомления администратору в лог. Используется, когда бот не настроен.
type LogNotifier struct {
	logger Logger
}

func NewLogNotifier(logger Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify всегда успешен
func (n *LogNotifier) Notify(ctx context.Context, text string) error {
	n.logger.Info("Admin notification (no bot configured):\n%s", text)
	return nil
}

package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// CommandAction действие администратора над заявкой
type CommandAction string

const (
	ActionConfirm CommandAction = "confirm"
	ActionReject  CommandAction = "reject"
)

var (
	// ErrUnknownCommand возвращается, когда текст не является командой решения
	ErrUnknownCommand = errors.New("domain: unknown command")

	// ErrCommandUsage возвращается при неверном числе аргументов или формате дат
	ErrCommandUsage = errors.New("domain: invalid command usage")
)

// DecisionCommand разобранная команда "/confirm <roomId> <date>" или "/confirm <roomId> <checkIn> <checkOut>"
type DecisionCommand struct {
	Action   CommandAction
	RoomID   string
	CheckIn  types.Date
	CheckOut *types.Date // nil для формы с одной датой
}

// Stay интервал, на который ссылается команда
func (c *DecisionCommand) Stay() Stay {
	if c.CheckOut == nil {
		return SingleNightStay(c.CheckIn)
	}
	return Stay{CheckIn: c.CheckIn, CheckOut: *c.CheckOut}
}

// Filter фильтр поиска заявки для команды
func (c *DecisionCommand) Filter() PendingFilter {
	return PendingFilter{RoomID: c.RoomID, CheckIn: c.CheckIn, CheckOut: c.CheckOut}
}

// CommandUsage подсказка по формату команды
func CommandUsage(action CommandAction) string {
	return fmt.Sprintf("/%s <roomId> <YYYY-MM-DD> [<YYYY-MM-DD>]", action)
}

// FormatDecisionCommand формирует команду, которую администратор отправит обратно.
// Одна ночь записывается одной датой, диапазон двумя. Результат всегда разбирается ParseDecisionCommand.
func FormatDecisionCommand(action CommandAction, roomID string, stay Stay) string {
	if stay.Variant() == SingleNight {
		return fmt.Sprintf("/%s %s %s", action, roomID, stay.CheckIn)
	}
	return fmt.Sprintf("/%s %s %s %s", action, roomID, stay.CheckIn, stay.CheckOut)
}

// ParseDecisionCommand разбирает текст команды. Любая ошибка формата означает, что ничего не применяется.
func ParseDecisionCommand(text string) (*DecisionCommand, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return nil, ErrUnknownCommand
	}

	name := strings.TrimPrefix(fields[0], "/")
	// В группах Telegram добавляет имя бота: /confirm@hotel_bot
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}

	action := CommandAction(strings.ToLower(name))
	if action != ActionConfirm && action != ActionReject {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}

	args := fields[1:]
	if len(args) != 2 && len(args) != 3 {
		return nil, fmt.Errorf("%w: expected %s", ErrCommandUsage, CommandUsage(action))
	}

	cmd := &DecisionCommand{Action: action, RoomID: args[0]}

	checkIn, err := types.ParseDate(args[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommandUsage, err)
	}
	cmd.CheckIn = checkIn

	if len(args) == 3 {
		checkOut, err := types.ParseDate(args[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCommandUsage, err)
		}
		if _, err := NewStay(checkIn, &checkOut); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCommandUsage, err)
		}
		cmd.CheckOut = &checkOut
	}

	return cmd, nil
}

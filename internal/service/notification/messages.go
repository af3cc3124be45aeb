package notification

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// NewRequest текст уведомления о новой заявке.
// Содержит готовые команды подтверждения и отклонения, администратор отправляет их обратно без изменений.
func NewRequest(room *domain.Room, req *domain.PendingRequest) string {
	var b strings.Builder
	b.WriteString("Новая заявка на бронирование\n")
	fmt.Fprintf(&b, "Номер: %s", req.RoomID)
	if room != nil {
		if name := room.Name.In(domain.DefaultLanguage); name != "" {
			fmt.Fprintf(&b, " (%s)", name)
		}
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Даты: %s\n", describeStay(req.Stay))
	fmt.Fprintf(&b, "Гость: %s\n", req.Name)
	fmt.Fprintf(&b, "Телефон: %s\n", req.Phone)
	fmt.Fprintf(&b, "Подтвердить: %s\n", domain.FormatDecisionCommand(domain.ActionConfirm, req.RoomID, req.Stay))
	fmt.Fprintf(&b, "Отклонить: %s", domain.FormatDecisionCommand(domain.ActionReject, req.RoomID, req.Stay))
	return b.String()
}

// replyTexts ответы администратору в чате бота
type replyTexts struct {
	confirmed     string
	rejected      string
	noPending     string
	pendingHeader string
}

var replies = map[string]replyTexts{
	domain.LangRU: {
		confirmed:     "Бронирование подтверждено: номер %s, %s, гость %s (%s)",
		rejected:      "Заявка отклонена: номер %s, %s, гость %s (%s)",
		noPending:     "Нет заявок, ожидающих решения",
		pendingHeader: "Заявки, ожидающие решения: %d",
	},
	domain.LangUZ: {
		confirmed:     "Bron tasdiqlandi: xona %s, %s, mehmon %s (%s)",
		rejected:      "Ariza rad etildi: xona %s, %s, mehmon %s (%s)",
		noPending:     "Kutilayotgan arizalar yo'q",
		pendingHeader: "Kutilayotgan arizalar: %d",
	},
}

// repliesIn тексты на языке lang, для неизвестного языка - на языке по умолчанию
func repliesIn(lang string) replyTexts {
	if t, ok := replies[lang]; ok {
		return t
	}
	return replies[domain.DefaultLanguage]
}

// Confirmed ответ администратору после подтверждения
func Confirmed(lang string, req *domain.PendingRequest) string {
	return fmt.Sprintf(repliesIn(lang).confirmed,
		req.RoomID, describeStayIn(lang, req.Stay), req.Name, req.Phone)
}

// Rejected ответ администратору после отклонения
func Rejected(lang string, req *domain.PendingRequest) string {
	return fmt.Sprintf(repliesIn(lang).rejected,
		req.RoomID, describeStayIn(lang, req.Stay), req.Name, req.Phone)
}

// Expired уведомление об удалении просроченных заявок
func Expired(reqs []*domain.PendingRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Истек срок ожидания, удалено заявок: %d", len(reqs))
	for _, req := range reqs {
		fmt.Fprintf(&b, "\n- номер %s, %s, %s (%s)", req.RoomID, describeStay(req.Stay), req.Name, req.Phone)
	}
	return b.String()
}

// PendingList список заявок для команды /pending
func PendingList(lang string, reqs []*domain.PendingRequest) string {
	texts := repliesIn(lang)
	if len(reqs) == 0 {
		return texts.noPending
	}

	var b strings.Builder
	fmt.Fprintf(&b, texts.pendingHeader, len(reqs))
	for _, req := range reqs {
		fmt.Fprintf(&b, "\n\n%s, %s (%s)\n%s\n%s",
			describeStayIn(lang, req.Stay), req.Name, req.Phone,
			domain.FormatDecisionCommand(domain.ActionConfirm, req.RoomID, req.Stay),
			domain.FormatDecisionCommand(domain.ActionReject, req.RoomID, req.Stay),
		)
	}
	return b.String()
}

// describeStay "2024-06-01 (1 ночь)" или "2024-06-01..2024-06-04 (3 ночи)"
func describeStay(stay domain.Stay) string {
	return describeStayIn(domain.DefaultLanguage, stay)
}

// describeStayIn в узбекском у слова "kecha" нет формы множественного числа после числительного
func describeStayIn(lang string, stay domain.Stay) string {
	n := stay.CheckIn.DaysUntil(stay.CheckOut)
	if lang == domain.LangUZ {
		return fmt.Sprintf("%s (%d kecha)", stay, n)
	}
	return fmt.Sprintf("%s (%d %s)", stay, n, nightsWord(n))
}

// nightsWord склонение слова "ночь" по числу
func nightsWord(n int) string {
	n100 := n % 100
	n10 := n % 10
	switch {
	case n100 >= 11 && n100 <= 14:
		return "ночей"
	case n10 == 1:
		return "ночь"
	case n10 >= 2 && n10 <= 4:
		return "ночи"
	default:
		return "ночей"
	}
}

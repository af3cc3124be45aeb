package bot

import "github.com/m04kA/SMC-RoomBookingService/internal/domain"

// msgInvalidLanguage ответ на /language с неизвестным языком, одинаковый для всех чатов
const msgInvalidLanguage = "❌ Invalid language. Use /language ru or /language uz"

// texts ответы бота на одном языке
type texts struct {
	welcomeAdmin   string
	welcomeGuest   string
	chatID         string
	languagePrompt string
	languageSet    string
	unauthorized   string
	usage          string
	roomNotFound   string
	notFound       string
	alreadyBooked  string
	failed         string
}

var translations = map[string]texts{
	domain.LangRU: {
		welcomeAdmin: "Добро пожаловать! Доступные команды:\n" +
			"/pending - заявки, ожидающие решения\n" +
			"/confirm <roomId> <YYYY-MM-DD> [<YYYY-MM-DD>] - подтвердить заявку\n" +
			"/reject <roomId> <YYYY-MM-DD> [<YYYY-MM-DD>] - отклонить заявку\n" +
			"/language ru|uz - язык ответов\n" +
			"/getid - ID этого чата",
		welcomeGuest:   "Ваш ID чата: %d. Передайте его владельцу отеля, чтобы получать заявки на бронирование.",
		chatID:         "Ваш ID чата: %d",
		languagePrompt: "Выберите язык: /language ru или /language uz",
		languageSet:    "✅ Язык ответов: русский",
		unauthorized:   "❌ Нет доступа",
		usage:          "❌ Использование: %s",
		roomNotFound:   "❌ Номер не найден",
		notFound:       "❌ Заявка на этот номер и дату не найдена",
		alreadyBooked:  "⚠️ Номер уже забронирован на эти даты. Заявку можно только отклонить: %s",
		failed:         "❌ Произошла ошибка при обработке команды, попробуйте позже",
	},
	domain.LangUZ: {
		welcomeAdmin: "Xush kelibsiz! Mavjud buyruqlar:\n" +
			"/pending - qaror kutayotgan arizalar\n" +
			"/confirm <roomId> <YYYY-MM-DD> [<YYYY-MM-DD>] - arizani tasdiqlash\n" +
			"/reject <roomId> <YYYY-MM-DD> [<YYYY-MM-DD>] - arizani rad etish\n" +
			"/language ru|uz - javoblar tili\n" +
			"/getid - ushbu chat ID si",
		welcomeGuest:   "Sizning chat ID: %d. Bron arizalarini olish uchun uni mehmonxona egasiga yuboring.",
		chatID:         "Sizning chat ID: %d",
		languagePrompt: "Tilni tanlang: /language ru yoki /language uz",
		languageSet:    "✅ Javoblar tili: o'zbekcha",
		unauthorized:   "❌ Ruxsat yo'q",
		usage:          "❌ Foydalanish: %s",
		roomNotFound:   "❌ Xona topilmadi",
		notFound:       "❌ Ushbu xona va sana uchun ariza topilmadi",
		alreadyBooked:  "⚠️ Xona bu sanalarga allaqachon band qilingan. Arizani faqat rad etish mumkin: %s",
		failed:         "❌ Buyruqni bajarishda xatolik yuz berdi, keyinroq urinib ko'ring",
	},
}

// textsFor ответы на языке lang, для неизвестного языка - на языке по умолчанию
func textsFor(lang string) texts {
	if t, ok := translations[lang]; ok {
		return t
	}
	return translations[domain.DefaultLanguage]
}

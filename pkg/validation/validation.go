package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// phonePattern номер в духе E.164: необязательный "+", затем 10-15 цифр без ведущего нуля
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)

	// roomIDPattern идентификатор номера, безопасный для текстовых команд администратора
	roomIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// New создает валидатор с зарегистрированными правилами phone и room_id
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// RegisterValidation возвращает ошибку только для пустого тега или nil-функции
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("room_id", func(fl validator.FieldLevel) bool {
		return IsRoomID(fl.Field().String())
	})

	return v
}

// IsPhone проверяет формат телефона
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsRoomID проверяет формат идентификатора номера
func IsRoomID(s string) bool {
	return roomIDPattern.MatchString(s)
}

// Describe превращает ошибку валидатора в короткое сообщение вида "phone: failed on 'phone'"
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: failed on '%s=%s'", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: failed on '%s'", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// FirstField имя первого поля, не прошедшего проверку, или "" для ошибок не от валидатора
func FirstField(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ""
	}
	return verrs[0].Field()
}

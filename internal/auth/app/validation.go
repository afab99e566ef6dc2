package app

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"

	"cryptovest/internal/auth/domain/entities"
)

// Сообщения правил регистрации, отдаются клиенту как есть.
const (
	MsgNameTooShort        = "Full name too short"
	MsgNameTooLong         = "Full name too long"
	MsgUsernameTooShort    = "Username too short"
	MsgUsernameTooLong     = "Username too long"
	MsgInvalidEmail        = "Invalid email address"
	MsgPhoneTooShort       = "Phone number too short"
	MsgCountryRequired     = "Country required"
	MsgCurrencyRequired    = "Currency required"
	MsgPasswordTooShort    = "Password must be at least 8 characters"
	MsgPasswordNoUppercase = "Password must contain at least one uppercase letter"
	MsgPasswordNoDigit     = "Password must contain at least one number"
	MsgPasswordNoSpecial   = "Password must contain at least one special character"
)

// Ограничения длины считаются в кодовых единицах UTF-16, как у формы регистрации
// в браузере: символ вне BMP (например, эмодзи) занимает две единицы.
const (
	tagMinLen = "utf16min"
	tagMaxLen = "utf16max"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, tagMinLen, func(length, limit int) bool { return length >= limit })
	mustRegister(v, tagMaxLen, func(length, limit int) bool { return length <= limit })
	return v
}

func mustRegister(v *validator.Validate, tag string, check func(length, limit int) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return check(utf16Len(fl.Field().String()), limit)
	})
	if err != nil {
		panic(err)
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

type rule struct {
	tag     string
	message string
}

type fieldRules struct {
	field string
	value func(*entities.Registration) string
	rules []rule
}

// Порядок полей и правил определяет, какое нарушение будет возвращено первым.
var registrationRules = []fieldRules{
	{
		field: "name",
		value: func(r *entities.Registration) string { return r.Name },
		rules: []rule{{"utf16min=2", MsgNameTooShort}, {"utf16max=50", MsgNameTooLong}},
	},
	{
		field: "username",
		value: func(r *entities.Registration) string { return r.Username },
		rules: []rule{{"utf16min=3", MsgUsernameTooShort}, {"utf16max=30", MsgUsernameTooLong}},
	},
	{
		field: "email",
		value: func(r *entities.Registration) string { return r.Email },
		rules: []rule{{"email", MsgInvalidEmail}},
	},
	{
		field: "phone",
		value: func(r *entities.Registration) string { return r.Phone },
		rules: []rule{{"utf16min=6", MsgPhoneTooShort}},
	},
	{
		field: "country",
		value: func(r *entities.Registration) string { return r.Country },
		rules: []rule{{"utf16min=2", MsgCountryRequired}},
	},
	{
		field: "currency",
		value: func(r *entities.Registration) string { return r.Currency },
		rules: []rule{{"utf16min=2", MsgCurrencyRequired}},
	},
	{
		field: "password",
		value: func(r *entities.Registration) string { return r.Password },
		rules: []rule{
			{"utf16min=8", MsgPasswordTooShort},
			{"containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ", MsgPasswordNoUppercase},
			{"containsany=0123456789", MsgPasswordNoDigit},
			{"containsany=!@#$%^&*", MsgPasswordNoSpecial},
		},
	},
}

// NormalizeRegistration обрезает пробелы по краям и приводит email к нижнему регистру.
// Пароль не изменяется.
func NormalizeRegistration(form entities.Registration) entities.Registration {
	return entities.Registration{
		Name:     strings.TrimSpace(form.Name),
		Username: strings.TrimSpace(form.Username),
		Email:    strings.ToLower(strings.TrimSpace(form.Email)),
		Phone:    strings.TrimSpace(form.Phone),
		Country:  strings.TrimSpace(form.Country),
		Currency: strings.TrimSpace(form.Currency),
		Password: form.Password,
	}
}

// ValidateRegistration возвращает *entities.ValidationError для первого нарушенного правила.
func ValidateRegistration(form *entities.Registration) error {
	for _, fr := range registrationRules {
		value := fr.value(form)
		for _, r := range fr.rules {
			if err := validate.Var(value, r.tag); err != nil {
				return &entities.ValidationError{Field: fr.field, Rule: r.tag, Message: r.message}
			}
		}
	}
	return nil
}

// Package forms содержит декларативные схемы форм приложения.
// Схемы используются и клиентом (ошибки под полями ввода), и сервером
// (валидация тела запроса), поэтому правила и сообщения совпадают.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Имена полей форм (совпадают с JSON-ключами API).
const (
	FieldUsername     = "username"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldObservations = "observations"
)

// Сообщения валидации.
const (
	MsgUsernameTooShort = "Имя пользователя должно содержать минимум 3 буквы"
	MsgUsernamePattern  = "Имя пользователя может содержать только буквы и дефисы"
	MsgNameTooShort     = "Имя должно содержать минимум 3 буквы"
	MsgEmailInvalid     = "Укажите корректный email"
	msgInvalidValue     = "Некорректное значение"
)

// usernamePattern - только латинские буквы и дефисы.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z-]+$`)

// messages сопоставляет пару "поле/правило" с текстом ошибки.
//
//nolint:gochecknoglobals // Таблица сообщений неизменна
var messages = map[string]string{
	FieldUsername + "/min":      MsgUsernameTooShort,
	FieldUsername + "/username": MsgUsernamePattern,
	FieldName + "/min":          MsgNameTooShort,
	FieldEmail + "/email":       MsgEmailInvalid,
}

// customRules - собственные правила валидации по имени тэга.
//
//nolint:gochecknoglobals // Таблица правил неизменна
var customRules = map[string]validator.Func{
	"username": func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	},
}

// validate - общий экземпляр валидатора (кэширует разбор структур).
//
//nolint:gochecknoglobals // validator.Validate рассчитан на переиспользование
var validate = mustNewValidator()

func mustNewValidator() *validator.Validate {
	v, err := newValidator(customRules)
	if err != nil {
		panic(err)
	}
	return v
}

func newValidator(rules map[string]validator.Func) (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	// В ошибках используем имя из тэга form, а не имя поля структуры
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("ошибка регистрации правила %q: %w", tag, err)
		}
	}
	return v, nil
}

// FieldError - ошибка одного поля формы.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors - ошибки формы в порядке объявления полей.
// Для каждого поля хранится только первое нарушенное правило.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// Get возвращает сообщение для поля или пустую строку.
func (e FieldErrors) Get(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Has сообщает, есть ли ошибка у поля.
func (e FieldErrors) Has(field string) bool {
	return e.Get(field) != ""
}

// ClaimUsernameForm - форма резервирования имени пользователя.
type ClaimUsernameForm struct {
	Username string `form:"username" validate:"min=3,username"`
}

// Normalize приводит имя пользователя к нижнему регистру.
func (f *ClaimUsernameForm) Normalize() {
	f.Username = strings.ToLower(f.Username)
}

// RegisterForm - форма регистрации.
type RegisterForm struct {
	Username string `form:"username" validate:"min=3,username"`
	Name     string `form:"name" validate:"min=3"`
}

// Normalize приводит имя пользователя к нижнему регистру.
func (f *RegisterForm) Normalize() {
	f.Username = strings.ToLower(f.Username)
}

// ConfirmSchedulingForm - форма подтверждения бронирования.
type ConfirmSchedulingForm struct {
	Name         string `form:"name" validate:"min=3"`
	Email        string `form:"email" validate:"email"`
	Observations string `form:"observations"`
}

// Normalize приводит email к нижнему регистру.
func (f *ConfirmSchedulingForm) Normalize() {
	f.Email = strings.ToLower(f.Email)
}

// Normalizer - форма, значения которой преобразуются после успешной валидации.
type Normalizer interface {
	Normalize()
}

// Validate проверяет форму и, если ошибок нет, нормализует ее значения.
// Возвращает FieldErrors при нарушении правил.
func Validate(form Normalizer) error {
	err := validate.Struct(form)
	if err == nil {
		form.Normalize()
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fieldErrs := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"/"+fe.Tag()]
		if !ok {
			msg = msgInvalidValue
		}
		fieldErrs = append(fieldErrs, FieldError{Field: fe.Field(), Message: msg})
	}
	return fieldErrs
}

// AsFieldErrors извлекает FieldErrors из ошибки валидации.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, true
	}
	return nil, false
}

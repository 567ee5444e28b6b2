package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationError — кастомный тип ошибки, содержит
// карту ошибок "поле" -> "сообщение".
type ValidationError struct {
	Errors map[string]string
}

// Error реализует стандартный интерфейс error.
func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msg := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator — обертка над go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// jsonTagName отдает имя поля из json-тега, чтобы клиент получал имена
// так, как они определены в DTO, а не имена полей структуры Go.
func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// New создает новый экземпляр Validator.
// Кастомные правила регистрируются и в движке gin (binding-теги),
// и в собственном экземпляре (validate-теги).
func New() *Validator {
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		engine.RegisterTagNameFunc(jsonTagName)
		registerCustomRules(engine)
	}

	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate выполняет валидацию переданной структуры.
// Если есть ошибки, возвращает *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	if converted, ok := AsValidationError(err); ok {
		return converted
	}
	// Это какая-то другая ошибка (например, ошибка рефлексии)
	return err
}

// AsValidationError превращает validator.ValidationErrors (в том числе
// ошибку gin-биндинга) в *ValidationError с читаемыми сообщениями.
func AsValidationError(err error) (*ValidationError, bool) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, false
	}

	customErrors := make(map[string]string)
	for _, fe := range validationErrors {
		// fe.Field() вернет имя из json-тега благодаря RegisterTagNameFunc
		customErrors[fe.Field()] = messageFor(fe)
	}

	return &ValidationError{Errors: customErrors}, true
}

// messageFor - вспомогательная функция для генерации сообщений.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s items/characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Replace(fe.Param(), " ", ", ", -1))
	case "url":
		return "Must be a valid URL"
	case "gtefield":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "is-user-role":
		return "Must be a valid user role"
	case "is-job-type":
		return "Must be a valid job type"
	case "is-job-status":
		return "Must be a valid job status"
	case "is-experience-level":
		return "Must be a valid experience level"
	case "is-application-status":
		return "Must be a valid application status"
	case "is-question-type":
		return "Must be a valid question type"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}

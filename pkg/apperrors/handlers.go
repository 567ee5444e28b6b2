package apperrors

import (
	"log"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный конверт ошибки API:
// {success:false, message, errors?}
type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if !h.Debug {
			// В продакшене скрываем детали
			appErr.Message = "Internal server error"
			appErr.Details = nil
		}
	}

	if appErr.HTTPCode >= 500 {
		log.Printf("Server error: %v", appErr.Unwrap())
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{
		Message: appErr.Message,
		Errors:  fieldErrors(appErr),
	})
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	handler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// fieldErrors раскладывает детали ошибки валидации в карту
// "поле" -> ["сообщение", ...] для поля errors конверта.
func fieldErrors(appErr *AppError) map[string][]string {
	if appErr.Code != CodeValidationFailed || appErr.Details == nil {
		return nil
	}

	details, ok := appErr.Details.(map[string]string)
	if !ok {
		return nil
	}

	out := make(map[string][]string, len(details))
	for field, msg := range details {
		out[field] = []string{msg}
	}
	return out
}

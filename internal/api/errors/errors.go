// Пакет errors — единый формат ошибок API Articles Query Service.
// Все ошибки возвращаются в JSON с машиночитаемым кодом; ошибки парсинга
// параметров дополнительно несут поле, отклонённое значение и допустимый
// набор значений.
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/nowordofalie/api-kata/internal/query"
)

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	// Code — машиночитаемый код ошибки
	Code string `json:"code"`
	// Message — человекочитаемое описание
	Message string `json:"message"`
	// Field — имя параметра с нарушением (только для ошибок парсинга)
	Field string `json:"field,omitempty"`
	// RejectedValue — отклонённое значение (только для ошибок парсинга)
	RejectedValue string `json:"rejectedValue,omitempty"`
	// Reason — причина отклонения (только для ошибок парсинга)
	Reason string `json:"reason,omitempty"`
	// AllowedValues — допустимые значения (для enum-параметров)
	AllowedValues []string `json:"allowedValues,omitempty"`
}

// WriteError записывает JSON-ошибку с указанным статусом и кодом.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// WriteParseError записывает 400 со структурированной ошибкой парсинга:
// ровно одно (первое) нарушение на запрос.
func WriteParseError(w http.ResponseWriter, perr *query.ParseError) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:          "VALIDATION_ERROR",
		Message:       perr.Error(),
		Field:         perr.Field,
		RejectedValue: perr.RejectedValue,
		Reason:        perr.Reason,
		AllowedValues: perr.AllowedValues,
	})
}

// ValidationError записывает 400 Bad Request.
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// NotFoundError записывает 404 Not Found.
func NotFoundError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "NOT_FOUND", message)
}

// InternalError записывает 500 Internal Server Error.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}

// SourceUnavailableError записывает 503 Service Unavailable
// (источник записей недоступен).
func SourceUnavailableError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusServiceUnavailable, "SOURCE_UNAVAILABLE", message)
}

// writeJSON сериализует тело ошибки.
func writeJSON(w http.ResponseWriter, status int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

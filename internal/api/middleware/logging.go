// logging.go — middleware логирования входящих HTTP-запросов через slog.
// Для сервиса выдачи статей строка запроса несёт основную смысловую
// нагрузку (фильтры, сортировка, пагинация), поэтому логируется отдельным
// атрибутом query, когда она непустая.
package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// RequestLogger возвращает middleware, логирующий каждый обработанный
// HTTP-запрос: метод, путь, строку запроса, статус, длительность,
// размер ответа и remote_addr.
// Уровень записи зависит от исхода: INFO для успешных ответов,
// WARN для клиентских ошибок (4xx), ERROR для серверных (5xx).
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With(slog.String("component", "http"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newStatusRecorder(w)

			next.ServeHTTP(wrapped, r)

			var level slog.Level
			switch {
			case wrapped.status >= 500:
				level = slog.LevelError
			case wrapped.status >= 400:
				level = slog.LevelWarn
			default:
				level = slog.LevelInfo
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.status),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("bytes", wrapped.written),
				slog.String("remote_addr", r.RemoteAddr),
			}
			if r.URL.RawQuery != "" {
				attrs = append(attrs, slog.String("query", r.URL.RawQuery))
			}

			log.LogAttrs(r.Context(), level, "Запрос обработан", attrs...)
		})
	}
}

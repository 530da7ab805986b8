package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newCapturedLogger — логгер, пишущий в буфер, для проверки вывода middleware.
func newCapturedLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return logger, &buf
}

// TestRequestLogger_Fields проверяет состав записи об успешном запросе,
// включая строку запроса отдельным атрибутом.
func TestRequestLogger_Fields(t *testing.T) {
	logger, buf := newCapturedLogger()

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles?status=published&size=5", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	out := buf.String()
	for _, want := range []string{
		"level=INFO",
		"component=http",
		"method=GET",
		"path=/api/v1/articles",
		"status=200",
		"bytes=14",
		`query="status=published&size=5"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("в записи нет %q; запись: %s", want, out)
		}
	}
}

// TestRequestLogger_NoQueryAttr — без строки запроса атрибут query не пишется.
func TestRequestLogger_NoQueryAttr(t *testing.T) {
	logger, buf := newCapturedLogger()

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if strings.Contains(buf.String(), "query=") {
		t.Errorf("атрибут query не ожидался; запись: %s", buf.String())
	}
}

// TestRequestLogger_Levels проверяет выбор уровня по статус-коду:
// WARN для клиентских ошибок, ERROR для серверных.
func TestRequestLogger_Levels(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{http.StatusNotFound, "level=WARN"},
		{http.StatusInternalServerError, "level=ERROR"},
	}

	for _, tc := range cases {
		logger, buf := newCapturedLogger()
		handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/articles/missing", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if !strings.Contains(buf.String(), tc.level) {
			t.Errorf("статус %d: ожидался %s; запись: %s", tc.status, tc.level, buf.String())
		}
	}
}

// TestStatusRecorder_Defaults — без явного WriteHeader статус считается 200,
// байты ответа суммируются по всем Write.
func TestStatusRecorder_Defaults(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := newStatusRecorder(rec)

	if sr.status != http.StatusOK {
		t.Errorf("status = %d, ожидался 200 по умолчанию", sr.status)
	}

	sr.Write([]byte("abc"))
	sr.Write([]byte("de"))
	if sr.written != 5 {
		t.Errorf("written = %d, ожидался 5", sr.written)
	}

	sr.WriteHeader(http.StatusTeapot)
	if sr.status != http.StatusTeapot {
		t.Errorf("status = %d, ожидался 418", sr.status)
	}
}

// recorder.go — общая обёртка http.ResponseWriter для middleware.
// Перехватывает статус-код и объём записанного тела; используется и
// логированием, и сбором метрик, чтобы не держать две копии обёртки.
package middleware

import "net/http"

// statusRecorder — обёртка ответа с перехватом статуса и счётчиком байт.
type statusRecorder struct {
	http.ResponseWriter
	// status — код ответа; пока WriteHeader не вызван, считается 200.
	status int
	// written — суммарный объём записанного тела в байтах.
	written int64
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.written += int64(n)
	return n, err
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

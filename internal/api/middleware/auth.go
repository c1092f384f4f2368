package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/PTC-AppointmentService/internal/api/handlers"
)

type contextKey string

const teacherIDKey contextKey = "teacherID"

// HeaderTeacherID заголовок с идентификатором авторизованного учителя
// Проверка подлинности выполняется на API gateway, сервис доверяет заголовку
const HeaderTeacherID = "X-Teacher-ID"

// Auth извлекает идентификатор учителя из заголовка и кладет его в контекст
// Запросы без валидного заголовка к защищенным маршрутам отклоняются
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderTeacherID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "missing "+HeaderTeacherID+" header")
			return
		}

		teacherID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || teacherID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "invalid "+HeaderTeacherID+" header")
			return
		}

		ctx := context.WithValue(r.Context(), teacherIDKey, teacherID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TeacherIDFromContext возвращает идентификатор учителя из контекста запроса
func TeacherIDFromContext(ctx context.Context) (int64, bool) {
	teacherID, ok := ctx.Value(teacherIDKey).(int64)
	return teacherID, ok
}

// OptionalAuth кладет идентификатор учителя в контекст, если заголовок есть
// и валиден, но не требует его наличия
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderTeacherID)
		if raw != "" {
			if teacherID, err := strconv.ParseInt(raw, 10, 64); err == nil && teacherID > 0 {
				r = r.WithContext(context.WithValue(r.Context(), teacherIDKey, teacherID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"Academy/internal/sessions"
	"context"
	"net/http"
)

type ctxKey struct{}

// AdminFrom достаёт claims, положенные AdminOnly в контекст запроса.
func AdminFrom(ctx context.Context) (*sessions.Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*sessions.Claims)
	return c, ok
}

// AdminOnly — chi-совместимая мидлварь: без валидной сессии редирект на логин.
// Позволяет писать: g.Use(middleware.AdminOnly(sess))
func AdminOnly(sess *sessions.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := sess.Current(r)
			if !ok {
				http.Redirect(w, r, "/admin/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
		})
	}
}

package middleware

import (
	"crypto/subtle"
	"net/http"
)

// AdminHeader carries the shared admin password on console routes.
const AdminHeader = "X-Admin-Password"

// RequireAdmin rejects requests whose admin header does not match the
// configured password. The portal has a single admin; there are no per-user
// admin accounts.
func RequireAdmin(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(AdminHeader)
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(password)) != 1 {
				http.Error(w, "admin access denied", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

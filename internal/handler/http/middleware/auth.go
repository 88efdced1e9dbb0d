package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hanoisoft/timesheet-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose token failed verification or does not
// identify an employee. Token issuance belongs to the identity service; this
// service only consumes access tokens.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			employeeID, ok := claims["employee_id"].(string)
			if !ok || employeeID == "" {
				response.Unauthorized(w, "Token does not identify an employee")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

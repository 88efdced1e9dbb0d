package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hanoisoft/timesheet-backend-go/internal/domain/employee"
	"github.com/hanoisoft/timesheet-backend-go/internal/handler/http/response"
)

// claimRoles reads the roles claim. Tokens carry roles as a JSON array,
// which decodes to []interface{}.
func claimRoles(claims map[string]interface{}) []employee.Role {
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]employee.Role, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, employee.Role(s))
		}
	}
	return roles
}

// RequireApprover requires a reviewing role. The service re-checks the role
// against the submission's current step; this gate only keeps plain
// employees off the approval endpoints.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Approver role required")
			return
		}

		for _, role := range claimRoles(claims) {
			switch role {
			case employee.RoleTeamLeader, employee.RoleManager, employee.RoleAdmin:
				next.ServeHTTP(w, r)
				return
			}
		}

		response.Forbidden(w, "Approver role required")
	})
}

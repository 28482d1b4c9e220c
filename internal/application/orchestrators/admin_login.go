package orchestrators

import (
	"context"
	"log/slog"

	"tigerlee/internal/domain/admin"
)

// AdminLoginInput carries a submitted credential. Username is empty when
// the password-only prompt was used.
type AdminLoginInput struct {
	Username string
	Password string
}

// AdminLoginDeps holds dependencies for ExecuteAdminLogin.
type AdminLoginDeps struct {
	Credential admin.Credential
}

// ExecuteAdminLogin runs the gate against the configured credential.
// POST: returned gate is LoggedIn on success; on failure it is LoggedOut
// with the generic error and ErrIncorrectCredential is returned
func ExecuteAdminLogin(_ context.Context, input AdminLoginInput, deps AdminLoginDeps) (admin.Gate, error) {
	gate := admin.NewGate()
	if err := gate.Submit(deps.Credential, input.Username, input.Password); err != nil {
		slog.Info("auth_event", "event", "admin_login_failed", "username", input.Username)
		return gate, err
	}
	slog.Info("auth_event", "event", "admin_login_success", "username", deps.Credential.Username(), "stub", deps.Credential.IsStub())
	return gate, nil
}

package utils

const auditProvider = "notion"

func AuditLoginSuccess(userID string) {
	Log.Audit.Info().
		Str("event", "login").
		Str("result", "success").
		Str("user", userID).
		Str("provider", auditProvider).
		Send()
}

func AuditLoginFailure() {
	Log.Audit.Warn().
		Str("event", "login").
		Str("result", "failure").
		Str("provider", auditProvider).
		Send()
}

func AuditLogout(userID string) {
	Log.Audit.Info().
		Str("event", "logout").
		Str("result", "success").
		Str("user", userID).
		Str("provider", auditProvider).
		Send()
}

func AuditLogoutFailure(userID string) {
	Log.Audit.Warn().
		Str("event", "logout").
		Str("result", "failure").
		Str("user", userID).
		Str("provider", auditProvider).
		Send()
}

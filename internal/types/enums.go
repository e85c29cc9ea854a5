package types

// Teamspace roles
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Token types
const (
	TokenAccess        = "access"
	TokenRefresh       = "refresh"
	TokenResetPassword = "reset_password"
	TokenVerifyEmail   = "verify_email"
)

// Invitation resolution actions
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

// Valid teamspace roles for validation
var ValidTeamspaceRoles = map[string]bool{
	RoleOwner:  true,
	RoleMember: true,
}

// PersistedTokenTypes are the token types stored in the tokens table.
// Access tokens are stateless and never persisted.
var PersistedTokenTypes = map[string]bool{
	TokenRefresh:       true,
	TokenResetPassword: true,
	TokenVerifyEmail:   true,
}

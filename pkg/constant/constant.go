package constant

import "time"

// Session store key prefixes. The refresh entry is keyed by user id so a
// password reset can revoke the whole registration in one delete; the reset
// entry is keyed by the opaque token itself.
const (
	RefreshKeyPrefix = "refresh:"
	ResetKeyPrefix   = "reset:"
)

// ResetTokenTTL bounds how long a password-reset token stays redeemable.
const ResetTokenTTL = 30 * time.Minute

// ResetTokenBytes is the entropy of an opaque reset token (hex-encoded on the wire).
const ResetTokenBytes = 32

// Claim values discriminating access tokens from refresh tokens.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Canned response messages for the operations that always report success.
const (
	MsgSignedUp      = "user signed up successfully"
	MsgResetSent     = "if an account with that email exists, a password reset link has been sent"
	MsgPasswordReset = "password reset successfully"
	MsgTokenValid    = "token is valid"
)

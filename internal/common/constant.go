package common

// AccessTokenHeaderName is the gRPC metadata key carrying the session token.
const AccessTokenHeaderName = "access_token"

// SessionCookieName is the cookie holding the web session token.
const SessionCookieName = "session"

// FlashCookieName is the cookie carrying a one-shot notification.
const FlashCookieName = "flash"

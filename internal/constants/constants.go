package constants

import "time"

// Session and context keys
const (
	SessionCookieName = "builddost_session"
	ContextKeyUserID  = "user_id"
	ContextKeyRequest = "request_id"
)

// Validation limits
const (
	MinPasswordLength    = 8
	MaxDescriptionLength = 10000
	MaxCodeLength        = 200000
	MaxNameLength        = 255
)

// Generation defaults
const (
	DefaultOpenAIModel          = "gpt-4o"
	DefaultGenerationTimeout    = 90 * time.Second
	DefaultGenerationMaxRetries = 2
	DefaultGenerationRetryDelay = 2 * time.Second
	DefaultGenerationRateLimit  = 1.0
	DefaultGenerationBurst      = 5
)

// Demo owner used when a generation request carries no user.
const (
	DemoUserEmail       = "demo@builddost.dev"
	DemoUserDisplayName = "Demo User"
)

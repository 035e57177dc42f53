package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrInvalidPIN         ErrCode = "INVALID_PIN"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrSessionExpired     ErrCode = "SESSION_EXPIRED"
	ErrInitSecretInvalid  ErrCode = "INIT_SECRET_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"
	ErrInvalidID  ErrCode = "INVALID_ID"
	ErrNoUpdates  ErrCode = "NO_UPDATES_PROVIDED"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound       ErrCode = "NOT_FOUND"
	ErrUsernameExists ErrCode = "USERNAME_EXISTS"
	ErrPINExists      ErrCode = "PIN_EXISTS"
	ErrLastAdmin      ErrCode = "LAST_ADMIN"

	// ─── Quiz ──────────────────────────────────────────────────────────
	ErrNoActiveQuiz   ErrCode = "NO_ACTIVE_QUIZ"
	ErrQuizCompleted  ErrCode = "QUIZ_COMPLETED"
	ErrNoQuestions    ErrCode = "NO_QUESTIONS"
	ErrFeedbackNeeded ErrCode = "FEEDBACK_NOT_SHOWN"

	// ─── AI / Quota ────────────────────────────────────────────────────
	ErrRateLimitExceeded  ErrCode = "RATE_LIMIT_EXCEEDED"
	ErrDailyLimitExceeded ErrCode = "DAILY_LIMIT_EXCEEDED"
	ErrAINotConfigured    ErrCode = "AI_NOT_CONFIGURED"
	ErrAIRequestFailed    ErrCode = "AI_REQUEST_FAILED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrMethodNotAllowed ErrCode = "METHOD_NOT_ALLOWED"
	ErrInternal         ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Invalid credentials."
	case ErrInvalidPIN:
		return "PIN must be exactly 4 digits."
	case ErrTokenRequired:
		return "No token provided."
	case ErrSessionExpired:
		return "Invalid or expired session."
	case ErrInitSecretInvalid:
		return "Invalid init secret."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrNoUpdates:
		return "No updates provided."
	case ErrNotFound:
		return "Resource not found."
	case ErrUsernameExists:
		return "Username already exists."
	case ErrPINExists:
		return "PIN already exists."
	case ErrLastAdmin:
		return "Cannot delete the last admin user."
	case ErrNoActiveQuiz:
		return "No quiz in progress."
	case ErrQuizCompleted:
		return "The quiz has already been completed."
	case ErrNoQuestions:
		return "The question bank is empty."
	case ErrFeedbackNeeded:
		return "Answer the current question before moving on."
	case ErrRateLimitExceeded:
		return "Rate limit exceeded. Please wait before trying again."
	case ErrDailyLimitExceeded:
		return "Daily AI explanation limit reached. Your quota resets tomorrow."
	case ErrAINotConfigured:
		return "AI explanations are not configured on this server."
	case ErrAIRequestFailed:
		return "The explanation service is currently unavailable."
	case ErrMethodNotAllowed:
		return "Method not allowed."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}

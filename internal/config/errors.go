package config

const (
	// Database errors
	ErrInitializeDatabaseFmt = "Failed to initialize database: %v"
	ErrGetAnnotationsFmt     = "Failed to get annotations: %v"

	// Auth errors
	ErrCreateProviderFmt      = "Failed to create provider: %v"
	ErrAuthHeaderRequired     = "Authorization header required"
	ErrInvalidSignatureFormat = "Invalid signature format"
	ErrInvalidSignature       = "Invalid signature"
	ErrInternalServerError    = "Internal server error"

	// Config errors
	ErrWriteConfigContentFmt = "Failed to write config content: %v"
	ErrCreateTempFileFmt     = "Failed to create temp file: %v"

	// Annotation processing errors
	ErrInitializingAnnotations = "Error initializing annotations"
	ErrReloadingAnnotations    = "Error reloading annotations"

	// Challenge errors
	ErrRefreshChallengeFmt = "Failed to refresh challenge"
)

// User-facing messages. MsgSavingAnnotationFailed is the single fixed
// notification emitted when a save attempt is rejected.
const (
	MsgSavingAnnotationFailed = "Saving annotation failed."
)

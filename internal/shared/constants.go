package shared

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	DefaultAPIBaseURL = "http://localhost:3001/api"
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// HTTP status codes used across the API surface.
const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusInternalServerError = 500
)

// User-facing error messages.
const (
	MsgInvalidEmail  = "Please provide a valid email address"
	MsgRequiredField = "This field is required"
	MsgServerError   = "An unexpected error occurred. Please try again."
	MsgUnauthorized  = "You are not authorized to perform this action"
	MsgNotFound      = "The requested resource was not found"
)

func IsDevelopment(env string) bool {
	return env == EnvDevelopment
}

func IsProduction(env string) bool {
	return env == EnvProduction
}

// Package handler holds what the JSON API handlers share.
package handler

const (
	// RouterRootPath is the root path of a route group.
	RouterRootPath = "/"

	// APIPath prefixes every JSON endpoint.
	APIPath = "/api"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// MsgInternalServerError is the plain text body of every 500.
	MsgInternalServerError = "Internal Server Error"

	// MsgInvalidBody is returned when the JSON body can not be parsed.
	MsgInvalidBody = "Invalid request body."
)

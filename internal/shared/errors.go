package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Upload errors
	ErrMissingFile   = fmt.Errorf("CSV file is required")
	ErrFileTooLarge  = fmt.Errorf("uploaded file is too large")
	ErrRateLimited   = fmt.Errorf("too many uploads, try again shortly")
	ErrInvalidSong   = fmt.Errorf("invalid song")
	ErrSongNotFound  = fmt.Errorf("song not found")
	ErrPersistence   = fmt.Errorf("failed to save songs to the database")
	ErrNothingToSave = fmt.Errorf("no rows to upsert")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

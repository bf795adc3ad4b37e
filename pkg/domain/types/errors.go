package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidCredentials means Crowdin rejected the API key (HTTP 401).
	ErrInvalidCredentials = goerr.New("invalid credentials")

	// ErrConnectionFailed means the export request could not be sent at all.
	ErrConnectionFailed = goerr.New("connection failed")

	// ErrDownloadFailed means the export archive could not be opened or read.
	ErrDownloadFailed = goerr.New("download failed")

	ErrTransformFailed = goerr.New("transform failed")
	ErrSinkWriteFailed = goerr.New("sink write failed")
	ErrConfigInvalid   = goerr.New("invalid configuration")
	ErrInvalidOption   = goerr.New("invalid option")
)

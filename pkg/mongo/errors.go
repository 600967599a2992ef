package mongo

import "errors"

var (
	// ErrFailedToConnect indicates all connection attempts were exhausted.
	ErrFailedToConnect = errors.New("mongo: failed to connect")

	// ErrHealthcheckFailed indicates the ping probe failed.
	ErrHealthcheckFailed = errors.New("mongo: healthcheck failed")
)

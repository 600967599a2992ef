package redis

import "errors"

var (
	// ErrFailedToParseConnString indicates the REDIS_URL is malformed.
	ErrFailedToParseConnString = errors.New("redis: failed to parse connection string")

	// ErrNotReady indicates all connection attempts were exhausted.
	ErrNotReady = errors.New("redis: server not ready")

	// ErrHealthcheckFailed indicates the ping probe failed.
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)

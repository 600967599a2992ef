// Package redis connects the service to a Redis server.
//
// Redis is optional for this service; it backs the login rate limiter when
// REDIS_URL is configured. Connect retries per the config so ordering of
// container startup does not matter.
package redis

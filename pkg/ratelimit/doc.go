// Package ratelimit provides a sliding-window rate limiter with pluggable
// storage.
//
// The login and register endpoints are the primary consumers: they are the
// only unauthenticated writes in the API and the natural target for
// credential stuffing. The limiter fails open when the store errors so a
// Redis outage degrades protection, not availability.
package ratelimit

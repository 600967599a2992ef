// Package jwt implements HS256 JSON Web Token generation and validation.
//
// The Service signs arbitrary JSON-serializable claims and verifies them
// with constant-time signature comparison and algorithm pinning. Claims
// types implementing Valid() error get their temporal claims checked during
// Parse.
package jwt

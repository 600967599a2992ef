// Package auth implements registration, login, and session handling for the
// MedScan API.
//
// Sessions run in one of two modes, fixed at process start: token mode signs
// a 7-day JWT and carries it in an httpOnly cookie (or Authorization header),
// cookie mode stores the plain email in a non-httpOnly cookie (or
// X-User-Email header). The Strategy interface hides the difference from the
// rest of the module; handlers only see Issue, Resolve, and Clear.
package auth

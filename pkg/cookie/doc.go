// Package cookie provides a small cookie manager with per-call functional
// options.
//
// The manager carries default attributes applied to every cookie; individual
// Set calls can override them. Delete always expires with the same path and
// domain the cookie was set with so browsers actually drop it.
package cookie

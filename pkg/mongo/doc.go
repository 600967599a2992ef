// Package mongo connects the service to MongoDB.
//
// Config is populated from the environment; New retries the initial
// connection so the service survives a database that comes up slightly
// later than the application container.
package mongo

// Package config loads typed configuration structs from environment
// variables, optionally seeded from a .env file.
//
// Each infrastructure package declares its own Config struct with `env`
// tags; callers load them once at startup:
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
// A configuration type is parsed exactly once per process; repeated calls
// return the cached value, so independent components can load the same
// config without coordinating.
package config

package main

// General API documentation for swaggo. Run `swag init -g cmd/offlined/docs.go` to generate docs.
//
// @title           offlined admin API
// @version         1.0
// @description     Admin endpoints of the offline-fallback interception daemon.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /_sw
//
// @schemes http

// Package api handles incoming HTTP requests, request validation and
// response formatting. It translates HTTP concerns into calls on the timer,
// meditation, prediction, settings and countdown services.
package api

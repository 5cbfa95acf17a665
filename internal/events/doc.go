// Package events provides types and interfaces for countdown events.
//
// The countdown runner emits an event on every state change. Handlers such as
// the signal dispatcher and the stream Hub subscribe through an EventEmitter
// without the runner knowing about them.
//
// The primary components are:
// - CountdownEvent: a countdown state change for one device and kind
// - EventHandler / EventEmitter: the dispatch contract
// - Hub: fans events out to live stream subscribers
package events

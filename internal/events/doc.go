// Package events lets services announce what happened without knowing who
// listens. The card service emits a cards.saved Event after each committed
// insert; handlers registered on the InMemoryEventEmitter react to it, for
// example by publishing it to NATS.
package events

// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts the flashcard and generation endpoints to
// the card service and the generator, and maps their errors to status codes
// and safe messages.
package api

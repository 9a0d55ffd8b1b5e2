// Package generation turns free-text study notes into flashcard drafts
// using an external text-generation model.
//
// The Pipeline renders a prompt, makes one Completer call under a timeout,
// normalizes the response payload to text, locates the first JSON array of
// objects in that text and keeps at most five complete question/answer
// pairs. Model output is untrusted: every failure is reported as an *Error
// matching one of ErrInvalidInput, ErrUpstreamUnavailable,
// ErrMalformedModelOutput or ErrNoUsableCards, with the raw model text
// attached where there is one.
//
// CachingGenerator and LimitedGenerator decorate any Generator with result
// caching and admission control without changing that contract.
package generation

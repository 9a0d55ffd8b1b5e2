// Package inference provides generation.Completer implementations for the
// supported text-generation services: the Hugging Face Inference API,
// Google Gemini and OpenAI chat completions.
//
// Every client returns the raw response payload. The Hugging Face client
// returns the response body as is; the Gemini and OpenAI clients return the
// generated text encoded as a JSON string. Non-success answers are reported
// as errors and never retried.
package inference

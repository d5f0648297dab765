// Package classify is the HTTP client for the image classification endpoint.
//
// The contract is a single call:
//
//	POST {baseURL}/predict
//	Content-Type: multipart/form-data; one part named "image" with the raw file bytes
//
//	200 {"class_name": "cat", "confidence": 0.9321}
//
// Any non-2xx status is returned as *StatusError without reading the body.
// Transport failures and malformed JSON are returned as wrapped errors. The
// client applies no timeout and never retries; callers cancel through ctx.
package classify

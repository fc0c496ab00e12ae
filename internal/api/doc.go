// Package api provides HTTP client functionality for communicating with the
// Phaxio v1 API. It handles authentication, multipart request assembly and
// response interpretation.
//
// # Authentication
//
// Phaxio v1 authenticates with form fields rather than headers: every request
// carries api_key and api_secret next to the operation's own fields.
//
// # Response Interpretation
//
// Every response body is JSON with a boolean "success" member. A request is
// rejected with an [apierrors.APIError] when the HTTP status is 400 or above,
// or when success is not true; the error keeps the raw body. A body that is
// not JSON at all yields an [apierrors.ResponseError].
//
// # Retries
//
// None. Each call issues exactly one request and reports the first failure.
// Use the context or the HTTP client timeout to bound a call.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Calls share no mutable state.
package api

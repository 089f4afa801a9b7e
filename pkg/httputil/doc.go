// Package httputil provides the request and response helpers of the
// specbox HTTP API.
//
// # Responses
//
// [WriteJSON] writes a JSON body with a status code. [WriteError] maps a
// [errors.Error] code to an HTTP status (see [errors.HTTPStatus]) and
// writes an [ErrorBody]:
//
//	{"code": "FIGURE_NOT_FOUND", "message": "figure 42 not found"}
//
// Internal errors are logged by the caller; the client only sees a generic
// message for them.
//
// # Requests
//
// [DecodeJSON] reads a size-limited JSON body and rejects unknown trailing
// data, returning an INVALID_INPUT error on any problem.
package httputil

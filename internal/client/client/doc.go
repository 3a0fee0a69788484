// Package client talks to the pharmacy REST API.
//
// The Client interface is the contract the CLI depends on; HTTPClient is its
// net/http implementation. It keeps the access token, sends it as a bearer
// token and turns the API's error envelope into sentinel errors that callers
// match with errors.Is: ErrUnavailable, ErrUnauthorized and the common
// package errors for not-found, duplicate, validation and throttling.
package client

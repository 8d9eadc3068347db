// Package client talks to a postbox server.
//
// HTTPClient wraps the JSON API: registration, the owner profile, friend
// lookup and the mailbox. Credentials are kept in memory and sent as the
// x-user-name and x-user-token headers on every protected call. Ping asks the
// gRPC health endpoint whether the server is serving.
//
// # Errors
//
// ErrUnavailable, ErrUnauthorized and ErrNotFound are matched with errors.Is.
// Any other non-2xx answer is returned as *APIError carrying the server's
// status and message.
package client

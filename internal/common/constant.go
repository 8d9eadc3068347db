// Package common contains shared constants and sentinel errors used across
// postbox components.
package common

// Credential headers carried by every authenticated request. The token is
// the account password itself; the service does not issue sessions.
const (
	UserNameHeaderName  = "x-user-name"
	UserTokenHeaderName = "x-user-token"
)

// InboxWindow is the maximum number of messages returned by a single inbox read.
const InboxWindow = 100

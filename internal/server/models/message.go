package models

// Message is a single text message. FromUser and ToUser hold usernames.
// SentAt is a unix timestamp in seconds.
type Message struct {
	ID       int64  `json:"id"`
	FromUser string `json:"from_user"`
	ToUser   string `json:"to_user"`
	Contents string `json:"contents"`
	SentAt   int64  `json:"sent_at"`
}

// Inbox is one read of a mailbox. QueryTime is taken before the read and is
// the value clients pass back as the deletion cutoff.
type Inbox struct {
	QueryTime int64      `json:"query_time"`
	Messages  []*Message `json:"messages"`
}

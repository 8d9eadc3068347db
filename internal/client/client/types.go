package client

// User is a rendered user. PrivateKey and Info are only filled for the
// caller's own record.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key,omitempty"`
	Info       string `json:"info,omitempty"`
}

type Message struct {
	ID       int64  `json:"id"`
	FromUser string `json:"from_user"`
	ToUser   string `json:"to_user"`
	Contents string `json:"contents"`
	SentAt   int64  `json:"sent_at"`
}

// Inbox is one inbox read. Pass QueryTime to DeleteUpTo to prune exactly what
// was read.
type Inbox struct {
	QueryTime int64      `json:"query_time"`
	Messages  []*Message `json:"messages"`
}

package domain

// Message is one entry in a session transcript. Messages are immutable
// once written; ordering is the slice order of the stored record.
type Message struct {
	Role      Role
	Content   string
	ToolName  string // set on RoleTool messages only
	CreatedAt Timestamp
}

// ChatSession is the metadata view of a stored conversation. Identity is
// the (SessionID, UserID) pair: the same session id under a different
// user is a wholly distinct session.
type ChatSession struct {
	SessionID SessionID
	UserID    UserID
	Title     string
	UpdatedAt Timestamp
}

// HistoryRecord is the full durable state of one session: metadata plus
// the whole ordered message list, persisted as a single record.
type HistoryRecord struct {
	SessionID SessionID
	UserID    UserID
	Title     string
	Messages  []Message
	UpdatedAt Timestamp
}

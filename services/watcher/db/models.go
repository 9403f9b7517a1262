package db

type Snapshot struct {
	ID        int64
	Filter    string
	Hash      string
	Contents  string
	Createdat int64
}

type SentMessage struct {
	Notifier  string
	Filter    string
	Reference string
}

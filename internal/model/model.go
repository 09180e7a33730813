package model

// User is a directory entry in the remote store. The store owns the record;
// this client never mutates it.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Blog is a published post. Read-only from this client's perspective.
type Blog struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"publishedAt"` // ISO-8601, as stored
}

// Comment is attributed to a user and attached to a blog. Comments are
// created once and never edited or deleted.
type Comment struct {
	ID      string `json:"id"`
	BlogID  string `json:"blogId"`
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

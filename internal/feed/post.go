package feed

import (
	"errors"
	"time"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidDirection = errors.New("invalid vote direction")
)

// User 作者信息，创建后不可变
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// Comment 评论，只追加
type Comment struct {
	ID        string    `json:"id"`
	Author    User      `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Post 帖子
type Post struct {
	ID        string    `json:"id"`
	Author    User      `json:"author"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	Timestamp time.Time `json:"timestamp"`
	Votes     int       `json:"votes"`
	Comments  []Comment `json:"comments"`
}

// clone returns a copy that shares no slices with p.
func (p Post) clone() Post {
	out := p
	out.Comments = make([]Comment, len(p.Comments))
	copy(out.Comments, p.Comments)
	return out
}

// Report is an out-of-band signal raised against a post.
type Report struct {
	PostID string    `json:"postId"`
	At     time.Time `json:"at"`
}

// Acknowledgment is what Report hands back to the caller.
type Acknowledgment struct {
	PostID     string    `json:"postId"`
	ReportedAt time.Time `json:"reportedAt"`
	Forwarded  bool      `json:"forwarded"`
}

// ReportSink receives reports after the store has recorded them.
// Implementations must not block.
type ReportSink interface {
	Submit(r Report) bool
}

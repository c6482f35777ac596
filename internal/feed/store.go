// Package feed holds the in-memory HostelBuzz feed for a single session.
//
// A Store is not safe for concurrent use. It is owned by exactly one session,
// which serializes every call (see session.Session.Do).
package feed

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Store 单会话的帖子集合，按时间倒序
type Store struct {
	posts    []*Post
	index    map[string]*Post
	comments map[string]struct{}
	reports  []Report

	now   func() time.Time
	newID func() string
	sink  ReportSink
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func WithReportSink(sink ReportSink) Option {
	return func(s *Store) { s.sink = sink }
}

// New builds a store from seed, re-sorted newest first.
func New(seed []Post, opts ...Option) *Store {
	s := &Store{
		posts:    make([]*Post, 0, len(seed)),
		index:    make(map[string]*Post, len(seed)),
		comments: make(map[string]struct{}),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(s)
	}
	for _, p := range seed {
		cp := p.clone()
		s.posts = append(s.posts, &cp)
		s.index[cp.ID] = &cp
		for _, c := range cp.Comments {
			s.comments[c.ID] = struct{}{}
		}
	}
	sort.SliceStable(s.posts, func(i, j int) bool {
		return s.posts[i].Timestamp.After(s.posts[j].Timestamp)
	})
	return s
}

// AddPost 新建帖子，作者默认自赞一票
func (s *Store) AddPost(content string, category Category, author User) Post {
	p := &Post{
		ID:        s.uniqueID(func(id string) bool { _, ok := s.index[id]; return ok }),
		Author:    author,
		Content:   content,
		Category:  category,
		Timestamp: s.now(),
		Votes:     1,
		Comments:  []Comment{},
	}
	// first position whose timestamp is not after p: p lands ahead of equal timestamps
	i := sort.Search(len(s.posts), func(i int) bool {
		return !s.posts[i].Timestamp.After(p.Timestamp)
	})
	s.posts = append(s.posts, nil)
	copy(s.posts[i+1:], s.posts[i:])
	s.posts[i] = p
	s.index[p.ID] = p
	return p.clone()
}

// Vote applies a single up or down vote. Order is never changed.
func (s *Store) Vote(postID string, dir Direction) (Post, error) {
	if dir != Up && dir != Down {
		return Post{}, fmt.Errorf("%w: %d", ErrInvalidDirection, int8(dir))
	}
	p, ok := s.index[postID]
	if !ok {
		return Post{}, fmt.Errorf("vote %q: %w", postID, ErrPostNotFound)
	}
	p.Votes += int(dir)
	return p.clone(), nil
}

// AddComment 追加评论，不影响帖子时间和排序
func (s *Store) AddComment(postID, content string, author User) (Comment, error) {
	p, ok := s.index[postID]
	if !ok {
		return Comment{}, fmt.Errorf("comment on %q: %w", postID, ErrPostNotFound)
	}
	c := Comment{
		ID:        s.uniqueID(func(id string) bool { _, ok := s.comments[id]; return ok }),
		Author:    author,
		Content:   content,
		Timestamp: s.now(),
	}
	p.Comments = append(p.Comments, c)
	s.comments[c.ID] = struct{}{}
	return c, nil
}

// Filter returns matching posts newest first. The result is a copy.
func (s *Store) Filter(f Filter) []Post {
	out := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		if f.Match(*p) {
			out = append(out, p.clone())
		}
	}
	return out
}

func (s *Store) Posts() []Post { return s.Filter(All) }

func (s *Store) Get(postID string) (Post, error) {
	p, ok := s.index[postID]
	if !ok {
		return Post{}, fmt.Errorf("get %q: %w", postID, ErrPostNotFound)
	}
	return p.clone(), nil
}

func (s *Store) Len() int { return len(s.posts) }

// Report records the signal and hands it to the sink. Posts are untouched and
// unknown ids are acknowledged as well.
func (s *Store) Report(postID string) Acknowledgment {
	r := Report{PostID: postID, At: s.now()}
	s.reports = append(s.reports, r)
	ack := Acknowledgment{PostID: postID, ReportedAt: r.At}
	if s.sink != nil {
		ack.Forwarded = s.sink.Submit(r)
	}
	return ack
}

// Reports returns every report recorded by this store, oldest first.
func (s *Store) Reports() []Report {
	out := make([]Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// uniqueID draws ids until one is unused; only a custom generator can collide.
func (s *Store) uniqueID(taken func(string) bool) string {
	for {
		id := s.newID()
		if !taken(id) {
			return id
		}
	}
}

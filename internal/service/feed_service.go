package service

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/d60-Lab/hostelbuzz/internal/feed"
	"github.com/d60-Lab/hostelbuzz/internal/session"
)

var (
	ErrEmptyComment = errors.New("comment content is empty")
)

var tracer = otel.Tracer("github.com/d60-Lab/hostelbuzz/internal/service")

// FeedService 帖子流用例层，所有操作在会话锁内执行
type FeedService interface {
	ListPosts(ctx context.Context, sess *session.Session, f feed.Filter) ([]feed.Post, error)
	GetPost(ctx context.Context, sess *session.Session, postID string) (feed.Post, error)
	CreatePost(ctx context.Context, sess *session.Session, content string, category feed.Category) (feed.Post, error)
	Vote(ctx context.Context, sess *session.Session, postID string, dir feed.Direction) (feed.Post, error)
	Comment(ctx context.Context, sess *session.Session, postID, content string) (feed.Comment, error)
	Report(ctx context.Context, sess *session.Session, postID string) (feed.Acknowledgment, error)
}

type feedService struct{}

func NewFeedService() FeedService { return &feedService{} }

func (s *feedService) run(ctx context.Context, name string, sess *session.Session, postID string, fn func(*feed.Store) error) error {
	_, span := tracer.Start(ctx, "feed."+name)
	defer span.End()
	span.SetAttributes(attribute.String("session.id", sess.ID))
	if postID != "" {
		span.SetAttributes(attribute.String("post.id", postID))
	}
	err := sess.Do(fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *feedService) ListPosts(ctx context.Context, sess *session.Session, f feed.Filter) ([]feed.Post, error) {
	var out []feed.Post
	err := s.run(ctx, "filter", sess, "", func(st *feed.Store) error {
		out = st.Filter(f)
		return nil
	})
	return out, err
}

func (s *feedService) GetPost(ctx context.Context, sess *session.Session, postID string) (feed.Post, error) {
	var p feed.Post
	err := s.run(ctx, "get", sess, postID, func(st *feed.Store) (err error) {
		p, err = st.Get(postID)
		return err
	})
	return p, err
}

// CreatePost 作者固定为会话用户；长度校验由 handler 完成
func (s *feedService) CreatePost(ctx context.Context, sess *session.Session, content string, category feed.Category) (feed.Post, error) {
	if !category.Valid() {
		return feed.Post{}, feed.ErrInvalidCategory
	}
	var p feed.Post
	err := s.run(ctx, "add_post", sess, "", func(st *feed.Store) error {
		p = st.AddPost(content, category, sess.User)
		return nil
	})
	return p, err
}

func (s *feedService) Vote(ctx context.Context, sess *session.Session, postID string, dir feed.Direction) (feed.Post, error) {
	var p feed.Post
	err := s.run(ctx, "vote", sess, postID, func(st *feed.Store) (err error) {
		p, err = st.Vote(postID, dir)
		return err
	})
	return p, err
}

// Comment 空白评论直接拒绝
func (s *feedService) Comment(ctx context.Context, sess *session.Session, postID, content string) (feed.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return feed.Comment{}, ErrEmptyComment
	}
	var c feed.Comment
	err := s.run(ctx, "add_comment", sess, postID, func(st *feed.Store) (err error) {
		c, err = st.AddComment(postID, content, sess.User)
		return err
	})
	return c, err
}

func (s *feedService) Report(ctx context.Context, sess *session.Session, postID string) (feed.Acknowledgment, error) {
	var ack feed.Acknowledgment
	err := s.run(ctx, "report", sess, postID, func(st *feed.Store) error {
		ack = st.Report(postID)
		return nil
	})
	return ack, err
}

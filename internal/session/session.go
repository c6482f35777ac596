// Package session replaces the browser's "logged in" flag with an explicit
// session object. Every session owns one feed.Store seeded from fixtures and
// serializes all access to it.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d60-Lab/hostelbuzz/internal/feed"
	"github.com/d60-Lab/hostelbuzz/internal/fixture"
	"github.com/d60-Lab/hostelbuzz/pkg/logger"
)

const issuer = "hostelbuzz"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrEmailRequired   = errors.New("email is required")
)

// Session 登录会话：当前用户 + 独占的 FeedStore
type Session struct {
	ID        string
	User      feed.User
	CreatedAt time.Time
	ExpiresAt time.Time

	mu    sync.Mutex
	store *feed.Store
}

// Do runs fn with exclusive access to the session's store.
func (s *Session) Do(fn func(*feed.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.store)
}

// SinkFactory builds the report sink handed to a new session's store.
type SinkFactory func(sessionID, reporterID string) feed.ReportSink

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager 会话管理：签发/校验 JWT，持有全部活跃会话
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	secret []byte
	ttl    time.Duration
	now    func() time.Time
	seed   func(now time.Time) []feed.Post
	sinks  SinkFactory
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

func WithSeed(seed func(now time.Time) []feed.Post) Option {
	return func(m *Manager) { m.seed = seed }
}

func WithSinkFactory(f SinkFactory) Option { return func(m *Manager) { m.sinks = f } }

func NewManager(secret string, ttl time.Duration, opts ...Option) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	m := &Manager{
		sessions: make(map[string]*Session),
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
		seed:     fixture.Posts,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Login 模拟登录：任何非空邮箱都会通过
func (m *Manager) Login(email string) (*Session, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, "", ErrEmailRequired
	}
	now := m.now()
	id := uuid.New().String()
	user := fixture.CurrentUser(id[:8], email)

	opts := []feed.Option{feed.WithClock(m.now)}
	if m.sinks != nil {
		opts = append(opts, feed.WithReportSink(m.sinks(id, user.ID)))
	}
	sess := &Session{
		ID:        id,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
		store:     feed.New(m.seed(now), opts...),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   user.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}).SignedString(m.secret)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()

	logger.Info("session started", zap.String("session", id), zap.String("user", user.ID))
	return sess, token, nil
}

// Resolve returns the live session behind token.
func (m *Manager) Resolve(token string) (*Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[c.ID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown session", ErrUnauthenticated)
	}
	if !m.now().Before(sess.ExpiresAt) {
		delete(m.sessions, c.ID)
		return nil, fmt.Errorf("%w: session expired", ErrUnauthenticated)
	}
	return sess, nil
}

// Logout 结束会话，丢弃其 FeedStore
func (m *Manager) Logout(token string) error {
	sess, err := m.Resolve(token)
	if err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.sessions, sess.ID)
	m.mu.Unlock()
	logger.Info("session ended", zap.String("session", sess.ID))
	return nil
}

// Sweep drops sessions expired at now and reports how many went.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// StartJanitor 周期性清理过期会话；返回停止函数
func (m *Manager) StartJanitor(interval time.Duration) func() {
	if interval <= 0 {
		interval = time.Minute
	}
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if n := m.Sweep(m.now()); n > 0 {
					logger.Debug("expired sessions swept", zap.Int("count", n))
				}
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(stop) }) }
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close drops every session.
func (m *Manager) Close() {
	m.mu.Lock()
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
}

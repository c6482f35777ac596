package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/hostelbuzz/internal/feed"
	"github.com/d60-Lab/hostelbuzz/internal/model"
	"github.com/d60-Lab/hostelbuzz/internal/moderation"
	"github.com/d60-Lab/hostelbuzz/internal/repository"
	"github.com/d60-Lab/hostelbuzz/pkg/logger"
)

// ReportEvent 带会话信息的举报事件
type ReportEvent struct {
	Report     feed.Report
	SessionID  string
	ReporterID string
	enqAt      time.Time
}

// ReportDestination receives every forwarded report.
type ReportDestination interface {
	Name() string
	Deliver(ctx context.Context, ev ReportEvent) error
}

// ReportForwarder 本地异步举报转发器：有界队列 + 多 worker，队列满时丢弃并告警
type ReportForwarder struct {
	dests     []ReportDestination
	ch        chan ReportEvent
	metricsCh chan time.Duration
	timeout   time.Duration
}

func NewReportForwarder(queueSize int, dests ...ReportDestination) *ReportForwarder {
	if queueSize <= 0 {
		queueSize = 1024
	}
	return &ReportForwarder{
		dests:     dests,
		ch:        make(chan ReportEvent, queueSize),
		metricsCh: make(chan time.Duration, 4096),
		timeout:   5 * time.Second,
	}
}

// Start 启动 worker；返回的停止函数会在超时前尽量排空队列
func (f *ReportForwarder) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	stopCh := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case ev := <-f.ch:
					f.deliver(ev)
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		wg.Wait()
		// workers are gone; drain what is left on the caller's goroutine
		for {
			select {
			case ev := <-f.ch:
				f.deliver(ev)
			case <-ctx.Done():
				return ctx.Err()
			default:
				return nil
			}
		}
	}
}

func (f *ReportForwarder) deliver(ev ReportEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	logger.Info("post reported",
		zap.String("post", ev.Report.PostID),
		zap.String("session", ev.SessionID),
		zap.String("reporter", ev.ReporterID),
		zap.Time("at", ev.Report.At))

	for _, d := range f.dests {
		if err := d.Deliver(ctx, ev); err != nil {
			logger.Warn("report delivery failed",
				zap.String("destination", d.Name()),
				zap.String("post", ev.Report.PostID),
				zap.Error(err))
		}
	}
	if !ev.enqAt.IsZero() {
		select {
		case f.metricsCh <- time.Since(ev.enqAt):
		default:
		}
	}
}

// Enqueue never blocks; false means the event was dropped.
func (f *ReportForwarder) Enqueue(ev ReportEvent) bool {
	ev.enqAt = time.Now()
	select {
	case f.ch <- ev:
		return true
	default:
		logger.Warn("report queue full, drop", zap.String("post", ev.Report.PostID), zap.String("session", ev.SessionID))
		return false
	}
}

// Bind returns a feed.ReportSink that tags reports with the session identity.
func (f *ReportForwarder) Bind(sessionID, reporterID string) feed.ReportSink {
	return boundSink{f: f, sessionID: sessionID, reporterID: reporterID}
}

// Metrics 返回转发落地耗时（入队到投递完成）
func (f *ReportForwarder) Metrics() <-chan time.Duration { return f.metricsCh }

// QueueLen 返回当前队列长度（采样值）
func (f *ReportForwarder) QueueLen() int { return len(f.ch) }

type boundSink struct {
	f          *ReportForwarder
	sessionID  string
	reporterID string
}

func (b boundSink) Submit(r feed.Report) bool {
	return b.f.Enqueue(ReportEvent{Report: r, SessionID: b.sessionID, ReporterID: b.reporterID})
}

type repositoryDestination struct{ repo repository.ReportRepository }

// RepositoryDestination stores reports in the reports table.
func RepositoryDestination(repo repository.ReportRepository) ReportDestination {
	return repositoryDestination{repo: repo}
}

func (repositoryDestination) Name() string { return "database" }

func (d repositoryDestination) Deliver(ctx context.Context, ev ReportEvent) error {
	return d.repo.Create(ctx, &model.Report{
		PostID:     ev.Report.PostID,
		SessionID:  ev.SessionID,
		ReporterID: ev.ReporterID,
		ReportedAt: ev.Report.At,
	})
}

type queueDestination struct{ q *moderation.Queue }

// QueueDestination pushes reports onto the redis moderation queue.
func QueueDestination(q *moderation.Queue) ReportDestination { return queueDestination{q: q} }

func (queueDestination) Name() string { return "moderation-queue" }

func (d queueDestination) Deliver(ctx context.Context, ev ReportEvent) error {
	return d.q.Push(ctx, moderation.Item{
		PostID:     ev.Report.PostID,
		SessionID:  ev.SessionID,
		ReporterID: ev.ReporterID,
		ReportedAt: ev.Report.At,
	})
}

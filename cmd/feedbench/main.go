package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/d60-Lab/hostelbuzz/config"
	"github.com/d60-Lab/hostelbuzz/internal/feed"
	"github.com/d60-Lab/hostelbuzz/internal/repository"
	"github.com/d60-Lab/hostelbuzz/internal/service"
	"github.com/d60-Lab/hostelbuzz/internal/session"
	"github.com/d60-Lab/hostelbuzz/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func avg(vs []time.Duration) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range vs {
		sum += d
	}
	return sum / time.Duration(len(vs))
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			return v
		}
	}
	return def
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()

	// params
	SESSIONS := envInt("SESSIONS", 50) // concurrent logged-in users
	OPS := envInt("OPS", 2000)         // feed operations per session
	REPORTS := envInt("REPORTS", 20)   // reports per session
	WORKERS := envInt("WORKERS", 4)    // forwarder workers

	repo := repository.NewReportRepository(db)
	forwarder := service.NewReportForwarder(SESSIONS*REPORTS, service.RepositoryDestination(repo))
	stop := forwarder.Start(WORKERS)

	sessions := session.NewManager(cfg.Auth.JWTSecret, time.Hour, session.WithSinkFactory(forwarder.Bind))
	svc := service.NewFeedService()
	ctx := context.Background()

	var mu sync.Mutex
	var wg sync.WaitGroup
	var addLat, voteLat, filterLat []time.Duration
	for s := 0; s < SESSIONS; s++ {
		sess, _ := must2(sessions.Login(fmt.Sprintf("bench%d@hostel.edu", s)))
		wg.Add(1)
		go func() {
			defer wg.Done()
			var a, v, f []time.Duration
			for i := 0; i < OPS; i++ {
				st := time.Now()
				p, err := svc.CreatePost(ctx, sess, fmt.Sprintf("bench post number %d", i), feed.Categories()[i%4])
				if err != nil {
					panic(err)
				}
				a = append(a, time.Since(st))

				st = time.Now()
				if _, err := svc.Vote(ctx, sess, p.ID, feed.Up); err != nil {
					panic(err)
				}
				v = append(v, time.Since(st))

				if i%10 == 0 {
					st = time.Now()
					if _, err := svc.ListPosts(ctx, sess, feed.Only(feed.CategoryMess)); err != nil {
						panic(err)
					}
					f = append(f, time.Since(st))
				}
			}
			for i := 0; i < REPORTS; i++ {
				_, _ = svc.Report(ctx, sess, fmt.Sprintf("post-%d", i%4+1))
			}
			mu.Lock()
			addLat = append(addLat, a...)
			voteLat = append(voteLat, v...)
			filterLat = append(filterLat, f...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	// collect landing metrics
	want := SESSIONS * REPORTS
	land := make([]time.Duration, 0, want)
	timeout := time.After(time.Minute)
collect:
	for len(land) < want {
		select {
		case d := <-forwarder.Metrics():
			land = append(land, d)
		case <-timeout:
			fmt.Printf("timeout while waiting for report metrics: got=%d want=%d\n", len(land), want)
			break collect
		}
	}
	_ = stop(ctx)

	fmt.Printf("SESSIONS=%d OPS=%d REPORTS=%d WORKERS=%d\n", SESSIONS, OPS, REPORTS, WORKERS)
	fmt.Printf("AddPost:  avg=%v p95=%v p99=%v\n", avg(addLat), pct(addLat, 0.95), pct(addLat, 0.99))
	fmt.Printf("Vote:     avg=%v p95=%v p99=%v\n", avg(voteLat), pct(voteLat, 0.95), pct(voteLat, 0.99))
	fmt.Printf("Filter:   avg=%v p95=%v p99=%v\n", avg(filterLat), pct(filterLat, 0.95), pct(filterLat, 0.99))
	fmt.Printf("Report landing (enqueue->stored): samples=%d avg=%v p95=%v p99=%v\n", len(land), avg(land), pct(land, 0.95), pct(land, 0.99))
	fmt.Printf("Reports stored: %d\n", must(repo.Count(ctx)))
}

func must2[A, B any](a A, b B, err error) (A, B) {
	if err != nil {
		panic(err)
	}
	return a, b
}

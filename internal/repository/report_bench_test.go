package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/hostelbuzz/internal/model"
)

func setupReportBenchDB(b *testing.B) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		b.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		b.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.Report{}); err != nil {
		b.Fatalf("migrate: %v", err)
	}
	return db
}

func BenchmarkReportCreate(b *testing.B) {
	repo := NewReportRepository(setupReportBenchDB(b))
	ctx := context.Background()
	now := time.Now()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = repo.Create(ctx, &model.Report{
			PostID:     fmt.Sprintf("post-%d", rand.Intn(100)),
			SessionID:  "bench",
			ReporterID: "user-bench",
			ReportedAt: now.Add(time.Duration(i) * time.Millisecond),
		})
	}
}

func BenchmarkListByPost(b *testing.B) {
	repo := NewReportRepository(setupReportBenchDB(b))
	ctx := context.Background()

	// 构造：一个热门帖子被 N 次举报，另有噪声帖子
	const N = 5000
	now := time.Now()
	for i := 0; i < N; i++ {
		_ = repo.Create(ctx, &model.Report{PostID: "post-hot", ReportedAt: now.Add(-time.Duration(i) * time.Second)})
		_ = repo.Create(ctx, &model.Report{PostID: fmt.Sprintf("post-%d", i), ReportedAt: now})
	}

	b.ResetTimer()
	b.Run("FirstPage", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.ListByPost(ctx, "post-hot", 0, 50)
		}
	})

	b.Run("DeepPage", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.ListByPost(ctx, "post-hot", N-50, 50)
		}
	})
}

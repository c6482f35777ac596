package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/hostelbuzz/config"
	"github.com/d60-Lab/hostelbuzz/internal/model"
)

func TestInitDBSqliteMemory(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}}
	db, err := InitDB(cfg)
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, db.WithContext(context.Background()).Create(&model.Report{ID: "r1", PostID: "post-1"}).Error)
	var cnt int64
	require.NoError(t, db.Model(&model.Report{}).Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)
}

func TestInitDBUnknownDriver(t *testing.T) {
	_, err := InitDB(&config.Config{Database: config.DatabaseConfig{Driver: "oracle"}})
	assert.Error(t, err)
}

package logrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/domain"
	"medstock/internal/pkg/database/dbtest"
	"medstock/internal/pkg/logger"
	"medstock/internal/repository/logrepo"
)

func TestAppendAndList_NewestFirst(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	clock := time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)
	repo := logrepo.NewLogRepository(db, 5*time.Second, logger.NewNop()).
		WithClock(func() time.Time { return clock })

	first, err := repo.Append(ctx, nil, "user-1", "A1", "Added 5 of MED-1")
	require.NoError(t, err)
	_, err = uuid.Parse(first.ID)
	assert.NoError(t, err)

	clock = clock.Add(24 * time.Hour)
	_, err = repo.Append(ctx, nil, domain.SystemActor, "userData", "Registered new user: ana")
	require.NoError(t, err)
	clock = clock.Add(time.Minute)
	_, err = repo.Append(ctx, nil, "user-1", "A1", "Removed 2 of MED-1")
	require.NoError(t, err)

	entries, err := repo.List(ctx, domain.Pagination{Limit: 10})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Removed 2 of MED-1", entries[0].Message)
	assert.Equal(t, "Registered new user: ana", entries[1].Message)
	assert.Equal(t, "Added 5 of MED-1", entries[2].Message)
	assert.Equal(t, time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC), entries[2].Date)
	assert.Equal(t, "user-1", entries[2].Actor)

	page, err := repo.List(ctx, domain.Pagination{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Registered new user: ana", page[0].Message)
}

func TestCountByDate(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	clock := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	repo := logrepo.NewLogRepository(db, 5*time.Second, logger.NewNop()).
		WithClock(func() time.Time { return clock })

	for i := 0; i < 3; i++ {
		_, err := repo.Append(ctx, nil, "u", "A1", "Added 1 of X")
		require.NoError(t, err)
	}
	clock = clock.AddDate(0, 0, -1)
	_, err := repo.Append(ctx, nil, "u", "A1", "Added 1 of X")
	require.NoError(t, err)

	n, err := repo.CountByDate(ctx, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestAppend_InsideRolledBackTransaction(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	repo := logrepo.NewLogRepository(db, 5*time.Second, logger.NewNop())

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = repo.Append(ctx, tx, "u", "A1", "Added 1 of X")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	entries, err := repo.List(ctx, domain.Pagination{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

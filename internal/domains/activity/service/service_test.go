package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citylocal-backend/internal/domains/activity/model"
)

// channelRepo signals every insert so tests can await the background write.
type channelRepo struct {
	mu       sync.Mutex
	inserted []*model.Activity
	notify   chan struct{}
}

func newChannelRepo() *channelRepo {
	return &channelRepo{notify: make(chan struct{}, 16)}
}

func (r *channelRepo) Insert(ctx context.Context, activity *model.Activity) error {
	r.mu.Lock()
	r.inserted = append(r.inserted, activity)
	r.mu.Unlock()
	r.notify <- struct{}{}
	return nil
}

func (r *channelRepo) List(ctx context.Context, page, limit int) ([]*model.Activity, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inserted, len(r.inserted), nil
}

func (r *channelRepo) awaitInsert(t *testing.T) *model.Activity {
	t.Helper()
	select {
	case <-r.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for activity insert")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inserted[len(r.inserted)-1]
}

func TestRecordWritesInBackground(t *testing.T) {
	repo := newChannelRepo()
	svc := NewActivityService(repo)

	userID := uuid.New()
	businessID := uuid.New()
	svc.Record(model.TypeBusinessSubmitted, "Business submitted",
		model.Refs{UserID: &userID, BusinessID: &businessID},
		map[string]interface{}{"city": "Springfield"},
	)

	entry := repo.awaitInsert(t)
	assert.Equal(t, model.TypeBusinessSubmitted, entry.Type)
	assert.Equal(t, "Business submitted", entry.Description)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, userID, *entry.UserID)
	require.NotNil(t, entry.BusinessID)
	assert.Equal(t, businessID, *entry.BusinessID)
	assert.Equal(t, "Springfield", entry.Metadata["city"])
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestRecordWithoutRefs(t *testing.T) {
	repo := newChannelRepo()
	svc := NewActivityService(repo)

	svc.Record(model.TypeContactSubmitted, "Ticket submitted", model.Refs{}, nil)

	entry := repo.awaitInsert(t)
	assert.Nil(t, entry.UserID)
	assert.Nil(t, entry.BusinessID)
	assert.Nil(t, entry.Metadata)
}

func TestListClampsPagination(t *testing.T) {
	repo := newChannelRepo()
	svc := NewActivityService(repo)

	svc.Record(model.TypeUserRegistered, "User registered", model.Refs{}, nil)
	repo.awaitInsert(t)

	entries, total, err := svc.List(context.Background(), -5, 9000)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, entries, 1)
}

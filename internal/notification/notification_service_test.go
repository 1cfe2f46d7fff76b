package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-leaveflow/internal/notification"
	notificationerrors "go-leaveflow/internal/notification/errors"
)

type fakeNotificationRepository struct {
	byID map[string]*notification.Notification
}

func newFakeNotificationRepository() *fakeNotificationRepository {
	return &fakeNotificationRepository{byID: map[string]*notification.Notification{}}
}

func (f *fakeNotificationRepository) Create(_ context.Context, n *notification.Notification) error {
	f.byID[n.ID.String()] = n
	return nil
}

func (f *fakeNotificationRepository) ListByUser(_ context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	var out []notification.Notification
	for _, n := range f.byID {
		if n.UserID.String() != userID {
			continue
		}
		if unreadOnly && n.ReadAt != nil {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (f *fakeNotificationRepository) FindByID(_ context.Context, id string) (*notification.Notification, error) {
	n, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (f *fakeNotificationRepository) MarkRead(_ context.Context, id string, at time.Time) error {
	n, ok := f.byID[id]
	if !ok || n.ReadAt != nil {
		return gorm.ErrRecordNotFound
	}
	n.ReadAt = &at
	return nil
}

func TestNotificationService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := newFakeNotificationRepository()
	svc := notification.NewService(repo)
	userID := uuid.NewString()

	err := svc.Create(ctx, notification.CreateNotificationRequest{
		UserID:    userID,
		Kind:      notification.KindRequestDecided,
		Title:     "Leave request approved",
		Reference: "LV-000042",
	})
	require.NoError(t, err)

	out, err := svc.ListMine(ctx, userID, false)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, notification.KindRequestDecided, out[0].Kind)
	assert.Equal(t, "LV-000042", out[0].Reference)
	assert.Empty(t, out[0].ReadAt)

	other, err := svc.ListMine(ctx, uuid.NewString(), false)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	repo := newFakeNotificationRepository()
	svc := notification.NewService(repo)
	userID := uuid.NewString()

	require.NoError(t, svc.Create(ctx, notification.CreateNotificationRequest{
		UserID: userID,
		Kind:   notification.KindRequestSubmitted,
		Title:  "Leave request received",
	}))

	out, err := svc.ListMine(ctx, userID, true)
	require.NoError(t, err)
	require.Len(t, out, 1)

	require.NoError(t, svc.MarkRead(ctx, userID, out[0].ID))

	// Marking twice is a no-op, not an error.
	assert.NoError(t, svc.MarkRead(ctx, userID, out[0].ID))

	unread, err := svc.ListMine(ctx, userID, true)
	require.NoError(t, err)
	assert.Empty(t, unread)

	assert.ErrorIs(t, svc.MarkRead(ctx, uuid.NewString(), out[0].ID), notificationerrors.ErrNotRecipient)
	assert.ErrorIs(t, svc.MarkRead(ctx, userID, uuid.NewString()), notificationerrors.ErrNotificationNotFound)
}

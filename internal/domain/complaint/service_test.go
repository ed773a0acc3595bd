package complaint

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	items []Complaint
}

func (r *memoryRepo) Create(ctx context.Context, c *Complaint) error {
	c.ID = int64(len(r.items) + 1)
	r.items = append(r.items, *c)
	return nil
}

func (r *memoryRepo) GetByTrackID(ctx context.Context, trackID uuid.UUID) (*Complaint, error) {
	for _, c := range r.items {
		if c.TrackID == trackID {
			out := c
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) List(ctx context.Context, status *string, limit int) ([]Complaint, error) {
	var res []Complaint
	for i := len(r.items) - 1; i >= 0; i-- {
		if status != nil && r.items[i].Status != *status {
			continue
		}
		res = append(res, r.items[i])
		if limit > 0 && len(res) == limit {
			break
		}
	}
	return res, nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id int64, status string, reply *string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = status
			r.items[i].AdminReply = reply
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	for _, c := range r.items {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

func TestSubmitAndTrack(t *testing.T) {
	svc := NewService(&memoryRepo{})
	ctx := context.Background()

	rcpt, err := svc.Submit(ctx, &Complaint{Topic: " แอร์เสีย ", Message: "ห้อง 402", Status: StatusResolved})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, rcpt.Status)
	assert.NotEqual(t, uuid.Nil, rcpt.TrackID)

	got, err := svc.Track(ctx, rcpt.TrackID.String())
	require.NoError(t, err)
	assert.Equal(t, "แอร์เสีย", got.Topic)
	assert.Equal(t, DefaultCategory, got.Category)

	_, err = svc.Track(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidTrackID)
	_, err = svc.Track(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitValidation(t *testing.T) {
	svc := NewService(&memoryRepo{})
	ctx := context.Background()

	_, err := svc.Submit(ctx, &Complaint{Message: "x"})
	assert.ErrorIs(t, err, ErrTopicRequired)
	_, err = svc.Submit(ctx, &Complaint{Topic: "x"})
	assert.ErrorIs(t, err, ErrMessageRequired)
	_, err = svc.Submit(ctx, &Complaint{Topic: "x", Message: strings.Repeat("ก", maxMessageLen+1)})
	assert.ErrorIs(t, err, ErrMessageTooLong)
}

func TestNotificationsAndReply(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := svc.Submit(ctx, &Complaint{Topic: "t", Message: "m"})
		require.NoError(t, err)
	}

	reply := "ซ่อมแล้ว"
	assert.ErrorIs(t, svc.UpdateStatus(ctx, 7, StatusPending, &reply), ErrReplyNeedsResolve)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, 7, "closed", nil), ErrInvalidStatus)
	require.NoError(t, svc.UpdateStatus(ctx, 7, StatusResolved, &reply))

	notes, err := svc.Notifications(ctx)
	require.NoError(t, err)
	require.Len(t, notes, NotificationLimit)
	assert.Equal(t, int64(6), notes[0].ID)

	pending, err := svc.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pending)
}

func TestParseTrackIDRejectsNonRFC(t *testing.T) {
	_, err := ParseTrackID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrInvalidTrackID)

	id := uuid.New()
	got, err := ParseTrackID(" " + id.String() + " ")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

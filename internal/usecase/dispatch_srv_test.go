package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/data/entity"
)

// fakeDirectory implements repository.UserRepository for dispatcher tests.
type fakeDirectory struct {
	adminIDs  []string
	lookupErr error

	users map[string]*entity.User
}

func (f *fakeDirectory) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeDirectory) FindIDsByRole(ctx context.Context, role entity.UserRole) ([]string, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.adminIDs, nil
}

func (f *fakeDirectory) UpdateRole(ctx context.Context, id string, role entity.UserRole) error {
	return nil
}

func (f *fakeDirectory) AddFCMToken(ctx context.Context, id, token string) error {
	return nil
}

func (f *fakeDirectory) Delete(ctx context.Context, id string) error {
	return nil
}

// recordedNotify captures one NotifyService invocation.
type recordedNotify struct {
	UserID    string
	Title     string
	Body      string
	BookingID *string
}

type fakeNotify struct {
	mu    sync.Mutex
	calls []recordedNotify
	err   error
}

func (f *fakeNotify) Notify(ctx context.Context, userID, title, body string, bookingID *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedNotify{UserID: userID, Title: title, Body: body, BookingID: bookingID})
	return f.err
}

func (f *fakeNotify) recorded() []recordedNotify {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedNotify(nil), f.calls...)
}

func newDispatcher(t *testing.T, dir *fakeDirectory, notify *fakeNotify) DispatchService {
	t.Helper()
	return NewDispatchService(dir, notify, zap.NewNop())
}

func TestDispatch_BookingCreated_NonPendingIgnored(t *testing.T) {
	notify := &fakeNotify{}
	ds := newDispatcher(t, &fakeDirectory{adminIDs: []string{"a1"}}, notify)

	err := ds.BookingCreated(context.Background(), entity.Booking{
		ID:     "b1",
		Title:  "Lab A",
		Status: entity.BookingStatusApproved,
	})

	require.NoError(t, err)
	assert.Empty(t, notify.recorded())
}

func TestDispatch_BookingCreated_FansOutToAdmins(t *testing.T) {
	notify := &fakeNotify{}
	ds := newDispatcher(t, &fakeDirectory{adminIDs: []string{"a1", "a2"}}, notify)

	err := ds.BookingCreated(context.Background(), entity.Booking{
		ID:          "b1",
		Title:       "Lab A",
		RequestedBy: "J. Doe",
		Status:      entity.BookingStatusPending,
	})

	require.NoError(t, err)

	calls := notify.recorded()
	require.Len(t, calls, 2)

	recipients := map[string]bool{}
	for _, call := range calls {
		recipients[call.UserID] = true
		assert.Equal(t, "New Booking Request", call.Title)
		assert.Equal(t, `A new request for "Lab A" was submitted by J. Doe.`, call.Body)
		require.NotNil(t, call.BookingID)
		assert.Equal(t, "b1", *call.BookingID)
	}
	assert.Equal(t, map[string]bool{"a1": true, "a2": true}, recipients)
}

func TestDispatch_BookingCreated_NoAdmins(t *testing.T) {
	notify := &fakeNotify{}
	ds := newDispatcher(t, &fakeDirectory{}, notify)

	err := ds.BookingCreated(context.Background(), entity.Booking{
		ID:     "b1",
		Status: entity.BookingStatusPending,
	})

	require.NoError(t, err)
	assert.Empty(t, notify.recorded())
}

func TestDispatch_BookingCreated_LookupFailureFailsOpen(t *testing.T) {
	notify := &fakeNotify{}
	ds := newDispatcher(t, &fakeDirectory{lookupErr: errors.New("db down")}, notify)

	err := ds.BookingCreated(context.Background(), entity.Booking{
		ID:     "b1",
		Status: entity.BookingStatusPending,
	})

	require.NoError(t, err)
	assert.Empty(t, notify.recorded())
}

func TestDispatch_BookingCreated_NotifyErrorPropagates(t *testing.T) {
	notify := &fakeNotify{err: errors.New("store write failed")}
	ds := newDispatcher(t, &fakeDirectory{adminIDs: []string{"a1"}}, notify)

	err := ds.BookingCreated(context.Background(), entity.Booking{
		ID:     "b1",
		Status: entity.BookingStatusPending,
	})

	assert.Error(t, err)
}

func TestDispatch_BookingUpdated_StatusUnchanged(t *testing.T) {
	notify := &fakeNotify{}
	ds := newDispatcher(t, &fakeDirectory{}, notify)

	before := entity.Booking{ID: "b1", Status: entity.BookingStatusPending, Hall: "101"}
	after := entity.Booking{ID: "b1", Status: entity.BookingStatusPending, Hall: "102"}

	err := ds.BookingUpdated(context.Background(), before, after)

	require.NoError(t, err)
	assert.Empty(t, notify.recorded())
}

func TestDispatch_BookingUpdated_Approved(t *testing.T) {
	notify := &fakeNotify{}
	ds := newDispatcher(t, &fakeDirectory{}, notify)

	before := entity.Booking{ID: "b1", Title: "X", Status: entity.BookingStatusPending, Hall: "101"}
	after := entity.Booking{ID: "b1", Title: "X", Status: entity.BookingStatusApproved, Hall: "101", RequesterID: "u1"}

	err := ds.BookingUpdated(context.Background(), before, after)

	require.NoError(t, err)

	calls := notify.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "u1", calls[0].UserID)
	assert.Equal(t, "Booking Approved!", calls[0].Title)
	assert.Equal(t, `Your request for "X" has been approved.`, calls[0].Body)
	require.NotNil(t, calls[0].BookingID)
	assert.Equal(t, "b1", *calls[0].BookingID)
}

func TestDispatch_BookingUpdated_ApprovedWithReallocation(t *testing.T) {
	notify := &fakeNotify{}
	ds := newDispatcher(t, &fakeDirectory{}, notify)

	before := entity.Booking{ID: "b1", Title: "X", Status: entity.BookingStatusPending, Hall: "101"}
	after := entity.Booking{ID: "b1", Title: "X", Status: entity.BookingStatusApproved, Hall: "102", RequesterID: "u1"}

	err := ds.BookingUpdated(context.Background(), before, after)

	require.NoError(t, err)

	calls := notify.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, `Your request for "X" has been approved. It has been re-allocated to 102.`, calls[0].Body)
}

func TestDispatch_BookingUpdated_RejectedWithReason(t *testing.T) {
	notify := &fakeNotify{}
	ds := newDispatcher(t, &fakeDirectory{}, notify)

	before := entity.Booking{ID: "b1", Title: "X", Status: entity.BookingStatusPending}
	after := entity.Booking{
		ID: "b1", Title: "X", Status: entity.BookingStatusRejected,
		RequesterID: "u1", RejectionReason: "Hall unavailable",
	}

	err := ds.BookingUpdated(context.Background(), before, after)

	require.NoError(t, err)

	calls := notify.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "Booking Rejected", calls[0].Title)
	assert.Equal(t, `Your request for "X" has been rejected. Reason: Hall unavailable`, calls[0].Body)
}

func TestDispatch_BookingUpdated_RejectedWithoutReason(t *testing.T) {
	notify := &fakeNotify{}
	ds := newDispatcher(t, &fakeDirectory{}, notify)

	before := entity.Booking{ID: "b1", Title: "X", Status: entity.BookingStatusPending}
	after := entity.Booking{ID: "b1", Title: "X", Status: entity.BookingStatusRejected, RequesterID: "u1"}

	err := ds.BookingUpdated(context.Background(), before, after)

	require.NoError(t, err)

	calls := notify.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, `Your request for "X" has been rejected. Reason: Not specified.`, calls[0].Body)
}

func TestDispatch_BookingUpdated_UnmodeledStatusIgnored(t *testing.T) {
	notify := &fakeNotify{}
	ds := newDispatcher(t, &fakeDirectory{}, notify)

	before := entity.Booking{ID: "b1", Status: entity.BookingStatusApproved}
	after := entity.Booking{ID: "b1", Status: entity.BookingStatus("Cancelled"), RequesterID: "u1"}

	err := ds.BookingUpdated(context.Background(), before, after)

	require.NoError(t, err)
	assert.Empty(t, notify.recorded())
}

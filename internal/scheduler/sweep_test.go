package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"academia/internal/domain/payment"
	"academia/internal/domain/subscription"
	"academia/internal/pkg/clock"
)

/* ==================== MOCKS ==================== */

type MockSubscriptionSource struct {
	mock.Mock
}

func (m *MockSubscriptionSource) ExpireOld(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionSource) ListAutoRenewExpiring(ctx context.Context, from, to time.Time) ([]*subscription.Subscription, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionSource) ListActiveExpiringWithin(ctx context.Context, from, to time.Time) ([]*subscription.Subscription, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionSource) CreateRenewal(ctx context.Context, prev *subscription.Subscription) (*subscription.Subscription, error) {
	args := m.Called(ctx, prev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

type MockRenewalBiller struct {
	mock.Mock
}

func (m *MockRenewalBiller) CreateForRenewal(ctx context.Context, sub *subscription.Subscription) (*payment.Payment, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

type MockReminderSender struct {
	mock.Mock
}

func (m *MockReminderSender) Send(ctx context.Context, studentID int64, template string, data map[string]any) error {
	args := m.Called(ctx, studentID, template, data)
	return args.Error(0)
}

/* ==================== HELPERS ==================== */

var testNow = time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)

func newSweeper(subs *MockSubscriptionSource, billing *MockRenewalBiller, reminders ReminderSender) *Sweeper {
	return NewSweeper(subs, billing, reminders, clock.NewFixed(testNow), 7, time.Second, nil)
}

func noRenewals(subs *MockSubscriptionSource) {
	subs.On("ListAutoRenewExpiring", mock.Anything, testNow, testNow.Add(24*time.Hour)).
		Return([]*subscription.Subscription{}, nil)
}

func noReminders(subs *MockSubscriptionSource) {
	subs.On("ListActiveExpiringWithin", mock.Anything, testNow, testNow.Add(7*24*time.Hour)).
		Return([]*subscription.Subscription{}, nil)
}

/* ==================== TESTS ==================== */

func TestRunDailySweep_ExpiryCount(t *testing.T) {
	subs := new(MockSubscriptionSource)
	subs.On("ExpireOld", mock.Anything).Return(int64(3), nil)
	noRenewals(subs)
	noReminders(subs)

	s := newSweeper(subs, new(MockRenewalBiller), nil)

	report, err := s.RunDailySweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), report.ExpiredCount)
	assert.Empty(t, report.Errors)
}

func TestRunDailySweep_RenewalCreatesSuccessorAndPayment(t *testing.T) {
	subs := new(MockSubscriptionSource)
	billing := new(MockRenewalBiller)
	reminders := new(MockReminderSender)

	prev := &subscription.Subscription{
		ID:        3,
		StudentID: 7,
		EndDate:   testNow.Add(12 * time.Hour),
		Status:    subscription.StatusActive,
		AutoRenew: true,
	}
	next := &subscription.Subscription{ID: 4, StudentID: 7, StartDate: prev.EndDate, Status: subscription.StatusPending}
	pay := &payment.Payment{ID: 11, StudentID: 7}

	subs.On("ExpireOld", mock.Anything).Return(int64(0), nil)
	subs.On("ListAutoRenewExpiring", mock.Anything, testNow, testNow.Add(24*time.Hour)).
		Return([]*subscription.Subscription{prev}, nil)
	subs.On("CreateRenewal", mock.Anything, prev).Return(next, nil)
	billing.On("CreateForRenewal", mock.Anything, next).Return(pay, nil)
	reminders.On("Send", mock.Anything, int64(7), "renewal_created", mock.Anything).Return(nil)
	noReminders(subs)

	s := newSweeper(subs, billing, reminders)

	report, err := s.RunDailySweep(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Renewals, 1)
	assert.Equal(t, int64(4), report.Renewals[0].NewID)
	assert.Equal(t, int64(11), report.Renewals[0].PaymentID)
	assert.Empty(t, report.Renewals[0].Error)
	billing.AssertExpectations(t)
}

func TestRunDailySweep_RenewalAlreadyDoneIsSkipped(t *testing.T) {
	subs := new(MockSubscriptionSource)
	billing := new(MockRenewalBiller)

	prev := &subscription.Subscription{ID: 3, StudentID: 7, EndDate: testNow.Add(time.Hour)}
	subs.On("ExpireOld", mock.Anything).Return(int64(0), nil)
	subs.On("ListAutoRenewExpiring", mock.Anything, testNow, testNow.Add(24*time.Hour)).
		Return([]*subscription.Subscription{prev}, nil)
	subs.On("CreateRenewal", mock.Anything, prev).Return(nil, subscription.ErrAlreadyRenewed)
	noReminders(subs)

	s := newSweeper(subs, billing, nil)

	report, err := s.RunDailySweep(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Renewals, 1)
	assert.True(t, report.Renewals[0].Skipped)
	assert.Empty(t, report.Renewals[0].Error)
	billing.AssertNotCalled(t, "CreateForRenewal", mock.Anything, mock.Anything)
}

func TestRunDailySweep_OneRenewalFailureDoesNotAbortBatch(t *testing.T) {
	subs := new(MockSubscriptionSource)
	billing := new(MockRenewalBiller)

	bad := &subscription.Subscription{ID: 3, StudentID: 7, EndDate: testNow.Add(time.Hour)}
	good := &subscription.Subscription{ID: 5, StudentID: 8, EndDate: testNow.Add(2 * time.Hour)}
	next := &subscription.Subscription{ID: 6, StudentID: 8, Status: subscription.StatusPending}

	subs.On("ExpireOld", mock.Anything).Return(int64(0), nil)
	subs.On("ListAutoRenewExpiring", mock.Anything, testNow, testNow.Add(24*time.Hour)).
		Return([]*subscription.Subscription{bad, good}, nil)
	subs.On("CreateRenewal", mock.Anything, bad).Return(nil, assert.AnError)
	subs.On("CreateRenewal", mock.Anything, good).Return(next, nil)
	billing.On("CreateForRenewal", mock.Anything, next).Return(&payment.Payment{ID: 12}, nil)
	noReminders(subs)

	s := newSweeper(subs, billing, nil)

	report, err := s.RunDailySweep(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Renewals, 2)
	assert.NotEmpty(t, report.Renewals[0].Error)
	assert.Equal(t, int64(6), report.Renewals[1].NewID)
}

func TestRunDailySweep_ReminderFailuresAreCountedNotFatal(t *testing.T) {
	subs := new(MockSubscriptionSource)
	reminders := new(MockReminderSender)

	a := &subscription.Subscription{ID: 1, StudentID: 7, EndDate: testNow.AddDate(0, 0, 3), Status: subscription.StatusActive}
	b := &subscription.Subscription{ID: 2, StudentID: 8, EndDate: testNow.AddDate(0, 0, 5), Status: subscription.StatusActive}

	subs.On("ExpireOld", mock.Anything).Return(int64(0), nil)
	noRenewals(subs)
	subs.On("ListActiveExpiringWithin", mock.Anything, testNow, testNow.Add(7*24*time.Hour)).
		Return([]*subscription.Subscription{a, b}, nil)
	reminders.On("Send", mock.Anything, int64(7), "expiry_reminder", mock.Anything).Return(assert.AnError)
	reminders.On("Send", mock.Anything, int64(8), "expiry_reminder", mock.Anything).Return(nil)

	s := newSweeper(subs, new(MockRenewalBiller), reminders)

	report, err := s.RunDailySweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.RemindersSent)
	assert.Equal(t, 1, report.ReminderFailures)
	reminders.AssertExpectations(t)
}

func TestRunDailySweep_OnePassFailureDoesNotBlockOthers(t *testing.T) {
	subs := new(MockSubscriptionSource)
	reminders := new(MockReminderSender)

	a := &subscription.Subscription{ID: 1, StudentID: 7, EndDate: testNow.AddDate(0, 0, 3), Status: subscription.StatusActive}

	subs.On("ExpireOld", mock.Anything).Return(int64(0), assert.AnError)
	noRenewals(subs)
	subs.On("ListActiveExpiringWithin", mock.Anything, testNow, testNow.Add(7*24*time.Hour)).
		Return([]*subscription.Subscription{a}, nil)
	reminders.On("Send", mock.Anything, int64(7), "expiry_reminder", mock.Anything).Return(nil)

	s := newSweeper(subs, new(MockRenewalBiller), reminders)

	report, err := s.RunDailySweep(context.Background())

	require.NoError(t, err)
	assert.Len(t, report.Errors, 1)
	assert.Equal(t, 1, report.RemindersSent)
}

func TestRunDailySweep_NotReentrant(t *testing.T) {
	subs := new(MockSubscriptionSource)

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	subs.On("ExpireOld", mock.Anything).Run(func(mock.Arguments) {
		once.Do(func() { close(started) })
		<-release
	}).Return(int64(0), nil)
	noRenewals(subs)
	noReminders(subs)

	s := newSweeper(subs, new(MockRenewalBiller), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.RunDailySweep(context.Background())
		assert.NoError(t, err)
	}()

	<-started
	_, err := s.RunDailySweep(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	close(release)
	wg.Wait()

	// finished runs release the guard
	_, err = s.RunDailySweep(context.Background())
	assert.NoError(t, err)
}

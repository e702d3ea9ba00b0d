package checkin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"academia/internal/domain/student"
	"academia/internal/domain/subscription"
	"academia/internal/pkg/clock"
)

/* ==================== MOCKS ==================== */

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, ck *Checkin) error {
	args := m.Called(ctx, ck)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Checkin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Checkin), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, ck *Checkin) error {
	args := m.Called(ctx, ck)
	return args.Error(0)
}

func (m *MockRepository) GetByStudentAndDay(ctx context.Context, studentID int64, day string) (*Checkin, error) {
	args := m.Called(ctx, studentID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Checkin), args.Error(1)
}

func (m *MockRepository) ListByStudent(ctx context.Context, studentID int64, limit, offset int) ([]*Checkin, error) {
	args := m.Called(ctx, studentID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Checkin), args.Error(1)
}

func (m *MockRepository) ListByDay(ctx context.Context, day string) ([]*Checkin, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Checkin), args.Error(1)
}

type MockStudentDirectory struct {
	mock.Mock
}

func (m *MockStudentDirectory) Get(ctx context.Context, id int64) (*student.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*student.Student), args.Error(1)
}

type MockSubscriptionGate struct {
	mock.Mock
}

func (m *MockSubscriptionGate) GetActiveCovering(ctx context.Context, studentID int64, at time.Time) (*subscription.Subscription, error) {
	args := m.Called(ctx, studentID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

type MockFeed struct {
	mock.Mock
}

func (m *MockFeed) PublishCheckin(ck *Checkin)  { m.Called(ck) }
func (m *MockFeed) PublishCheckout(ck *Checkin) { m.Called(ck) }

/* ==================== HELPERS ==================== */

var testNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func activeSub() *subscription.Subscription {
	return &subscription.Subscription{
		ID:        3,
		StudentID: 7,
		StartDate: testNow.AddDate(0, 0, -14),
		EndDate:   testNow.AddDate(0, 0, 16),
		Status:    subscription.StatusActive,
	}
}

/* ==================== TESTS ==================== */

func TestCheckIn_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	students := new(MockStudentDirectory)
	subs := new(MockSubscriptionGate)
	feed := new(MockFeed)

	students.On("Get", ctx, int64(7)).Return(&student.Student{ID: 7, Status: student.StatusActive}, nil)
	subs.On("GetActiveCovering", ctx, int64(7), testNow).Return(activeSub(), nil)
	repo.On("GetByStudentAndDay", ctx, int64(7), "2024-01-15").Return(nil, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(ck *Checkin) bool {
		return ck.StudentID == 7 && ck.CheckinDate == "2024-01-15" && ck.CheckinTime.Equal(testNow)
	})).Return(nil)
	feed.On("PublishCheckin", mock.Anything).Return()

	svc := NewService(repo, students, subs, feed, clock.NewFixed(testNow))

	ck, err := svc.CheckIn(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, "2024-01-15", ck.CheckinDate)
	repo.AssertExpectations(t)
	feed.AssertExpectations(t)
}

func TestCheckIn_NoActivePlan(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	students := new(MockStudentDirectory)
	subs := new(MockSubscriptionGate)

	students.On("Get", ctx, int64(7)).Return(&student.Student{ID: 7, Status: student.StatusActive}, nil)
	subs.On("GetActiveCovering", ctx, int64(7), testNow).Return(nil, nil)

	svc := NewService(repo, students, subs, nil, clock.NewFixed(testNow))

	_, err := svc.CheckIn(ctx, 7)

	assert.ErrorIs(t, err, ErrNoActivePlan)
	assert.Equal(t, "Aluno não possui plano ativo", err.Error())
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckIn_InactiveStudent(t *testing.T) {
	ctx := context.Background()
	students := new(MockStudentDirectory)

	students.On("Get", ctx, int64(7)).Return(&student.Student{ID: 7, Status: student.StatusSuspended}, nil)

	svc := NewService(new(MockRepository), students, new(MockSubscriptionGate), nil, clock.NewFixed(testNow))

	_, err := svc.CheckIn(ctx, 7)

	assert.ErrorIs(t, err, student.ErrNotActive)
}

func TestCheckIn_TwiceSameDay(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	students := new(MockStudentDirectory)
	subs := new(MockSubscriptionGate)

	students.On("Get", ctx, int64(7)).Return(&student.Student{ID: 7, Status: student.StatusActive}, nil)
	subs.On("GetActiveCovering", ctx, int64(7), testNow).Return(activeSub(), nil)
	repo.On("GetByStudentAndDay", ctx, int64(7), "2024-01-15").
		Return(&Checkin{ID: 1, StudentID: 7, CheckinDate: "2024-01-15"}, nil)

	svc := NewService(repo, students, subs, nil, clock.NewFixed(testNow))

	_, err := svc.CheckIn(ctx, 7)

	assert.ErrorIs(t, err, ErrAlreadyToday)
	assert.Equal(t, "Aluno já realizou check-in hoje", err.Error())
}

func TestCheckOut_ComputesDurationOnce(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	feed := new(MockFeed)

	in := testNow.Add(-90 * time.Minute)
	ck := &Checkin{ID: 1, StudentID: 7, CheckinTime: in}
	repo.On("GetByID", ctx, int64(1)).Return(ck, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(got *Checkin) bool {
		return got.CheckoutTime != nil && got.DurationMinutes != nil && *got.DurationMinutes == 90
	})).Return(nil)
	feed.On("PublishCheckout", mock.Anything).Return()

	svc := NewService(repo, new(MockStudentDirectory), new(MockSubscriptionGate), feed, clock.NewFixed(testNow))

	got, err := svc.CheckOut(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, 90, *got.DurationMinutes)
	repo.AssertExpectations(t)
}

func TestCheckOut_AlreadyClosed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)

	out := testNow.Add(-time.Hour)
	repo.On("GetByID", ctx, int64(1)).Return(&Checkin{ID: 1, CheckoutTime: &out}, nil)

	svc := NewService(repo, new(MockStudentDirectory), new(MockSubscriptionGate), nil, clock.NewFixed(testNow))

	_, err := svc.CheckOut(ctx, 1)

	assert.ErrorIs(t, err, ErrCheckedOut)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

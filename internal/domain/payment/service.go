package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"academia/internal/domain/student"
	"academia/internal/domain/subscription"
	"academia/internal/pkg/clock"
)

// StudentDirectory is implemented by the student service.
type StudentDirectory interface {
	Get(ctx context.Context, id int64) (*student.Student, error)
}

// SubscriptionReader is implemented by the subscription service.
type SubscriptionReader interface {
	Get(ctx context.Context, id int64) (*subscription.Subscription, error)
}

// ReceiptSender delivers payment receipts. Failures are logged, never fatal.
type ReceiptSender interface {
	Send(ctx context.Context, studentID int64, template string, data map[string]any) error
}

// Service owns the payment lifecycle:
// pending → processing → {paid, failed, cancelled}; paid → refunded.
type Service struct {
	repo     Repository
	students StudentDirectory
	subs     SubscriptionReader
	receipts ReceiptSender
	clk      clock.Clock
	loggerf  func(format string, args ...interface{})
}

func NewService(
	repo Repository,
	students StudentDirectory,
	subs SubscriptionReader,
	receipts ReceiptSender,
	clk clock.Clock,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		repo:     repo,
		students: students,
		subs:     subs,
		receipts: receipts,
		clk:      clk,
		loggerf:  loggerf,
	}
}

// Create opens a pending payment. When a subscription is supplied it must
// belong to the same student.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Payment, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !ValidMethod(Method(req.Method)) {
		return nil, ErrInvalidMethod
	}
	if req.DiscountAmount < 0 || req.Amount-req.DiscountAmount < 0 {
		return nil, ErrNegativeFinal
	}
	if _, err := s.students.Get(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if req.SubscriptionID != nil {
		sub, err := s.subs.Get(ctx, *req.SubscriptionID)
		if err != nil {
			return nil, err
		}
		if sub.StudentID != req.StudentID {
			return nil, ErrSubscriptionMismatch
		}
	}

	now := s.clk.Now()
	p := &Payment{
		StudentID:      req.StudentID,
		SubscriptionID: req.SubscriptionID,
		Amount:         req.Amount,
		DiscountAmount: req.DiscountAmount,
		FinalAmount:    req.Amount - req.DiscountAmount,
		Status:         StatusPending,
		Method:         Method(req.Method),
		DueDate:        req.DueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateForRenewal bills a renewed subscription: pending payment carrying
// the new period's pricing, due when the period starts.
func (s *Service) CreateForRenewal(ctx context.Context, sub *subscription.Subscription) (*Payment, error) {
	now := s.clk.Now()
	p := &Payment{
		StudentID:      sub.StudentID,
		SubscriptionID: &sub.ID,
		Amount:         sub.Price,
		DiscountAmount: sub.DiscountAmount,
		FinalAmount:    sub.FinalPrice,
		Status:         StatusPending,
		Method:         MethodBoleto,
		DueDate:        sub.StartDate,
		Notes:          fmt.Sprintf("renovação automática da assinatura %d", sub.ID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListByStudent(ctx context.Context, studentID int64) ([]*Payment, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *Service) ListOverdue(ctx context.Context) ([]*Payment, error) {
	return s.repo.ListOverdue(ctx, s.clk.Now())
}

// StartProcessing marks a payment handed to the gateway.
func (s *Service) StartProcessing(ctx context.Context, id int64) (*Payment, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransition(StatusProcessing) {
		return nil, ErrInvalidTransition
	}
	p.Status = StatusProcessing
	p.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Confirm settles the payment and activates the linked subscription in the
// same transaction. The receipt notification is best-effort.
func (s *Service) Confirm(ctx context.Context, id int64, req *ConfirmRequest) (*Payment, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusPaid {
		return nil, ErrAlreadyConfirmed
	}
	if !p.Status.CanTransition(StatusPaid) {
		return nil, ErrInvalidTransition
	}

	now := s.clk.Now()
	p.Status = StatusPaid
	p.PaidAt = &now
	p.UpdatedAt = now
	p.TransactionID = req.TransactionID
	if p.TransactionID == "" {
		p.TransactionID = uuid.New().String()
	}
	p.ConfirmedBy = req.ConfirmedBy

	if err := s.repo.ConfirmWithActivation(ctx, p); err != nil {
		return nil, err
	}

	if s.receipts != nil {
		if err := s.receipts.Send(ctx, p.StudentID, "payment_receipt", map[string]any{
			"payment_id": p.ID,
			"amount":     p.FinalAmount,
		}); err != nil {
			s.loggerf("level=error msg=receipt dispatch failed payment_id=%d student_id=%d err=%v", p.ID, p.StudentID, err)
		}
	}
	return p, nil
}

// Fail records a gateway failure.
func (s *Service) Fail(ctx context.Context, id int64, reason string) (*Payment, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransition(StatusFailed) {
		return nil, ErrInvalidTransition
	}
	p.Status = StatusFailed
	p.UpdatedAt = s.clk.Now()
	if reason != "" {
		p.appendNote("falha: " + reason)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Cancel voids an unpaid payment. Paid payments can only be refunded, never
// cancelled, to preserve the money trail.
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*Payment, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusPaid {
		return nil, ErrCancelPaid
	}
	if !p.Status.CanTransition(StatusCancelled) {
		return nil, ErrInvalidTransition
	}
	p.Status = StatusCancelled
	p.UpdatedAt = s.clk.Now()
	if reason != "" {
		p.appendNote("cancelado: " + reason)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Refund reverses a paid payment, fully by default. Partial refunds
// accumulate in refunded_amount; final_amount stays immutable once paid.
func (s *Service) Refund(ctx context.Context, id int64, req *RefundRequest) (*Payment, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusPaid {
		return nil, ErrRefundNotPaid
	}

	remaining := p.FinalAmount - p.RefundedAmount
	amount := remaining
	if req.Amount != nil {
		amount = *req.Amount
	}
	if amount <= 0 || amount > remaining {
		return nil, ErrRefundTooLarge
	}

	ref := uuid.New().String()
	p.RefundedAmount += amount
	p.appendNote(fmt.Sprintf("estorno %s: %.2f", ref, amount))
	if req.Reason != "" {
		p.appendNote("motivo: " + req.Reason)
	}
	if p.RefundedAmount >= p.FinalAmount {
		p.Status = StatusRefunded
	}
	p.UpdatedAt = s.clk.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyDiscount recomputes the final amount on an unpaid payment.
func (s *Service) ApplyDiscount(ctx context.Context, id int64, req *DiscountRequest) (*Payment, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusPaid || p.Status.IsTerminal() {
		return nil, ErrImmutable
	}
	if req.DiscountAmount < 0 || p.Amount-req.DiscountAmount < 0 {
		return nil, ErrNegativeFinal
	}

	p.DiscountAmount = req.DiscountAmount
	p.FinalAmount = p.Amount - req.DiscountAmount
	p.UpdatedAt = s.clk.Now()
	if req.Reason != "" {
		p.appendNote("desconto: " + req.Reason)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

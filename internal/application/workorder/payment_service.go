package workorder

import (
	"context"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService manages discount, deposit, final payment and total corrections.
// Derived amounts are never stored; every response recomputes them.
type PaymentService struct {
	*orderMutator
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(orderRepo workorder.WorkOrderRepository, locker shared.Locker, logger *zap.Logger) *PaymentService {
	return &PaymentService{orderMutator: newOrderMutator(orderRepo, locker, logger)}
}

// SetEventPublisher sets the event publisher for domain events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// GetPayment returns the payment view of an order
func (s *PaymentService) GetPayment(ctx context.Context, tenantID, orderID uuid.UUID) (*PaymentResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(order)
	return &resp, nil
}

// SetDiscount sets the discount percentage
func (s *PaymentService) SetDiscount(ctx context.Context, tenantID, orderID uuid.UUID, req DiscountRequest) (*PaymentResponse, error) {
	return s.run(ctx, tenantID, orderID, "set_discount", func(o *workorder.WorkOrder) error {
		if err := o.SetDiscount(req.Percent); err != nil {
			return err
		}
		if o.Payment.Deposit.GreaterThan(o.EffectiveTotal()) {
			s.logger.Warn("deposit exceeds discounted total",
				zap.String("work_order_id", o.ID.String()),
				zap.String("deposit", o.Payment.Deposit.StringFixed(2)),
				zap.String("effective_total", o.EffectiveTotal().StringFixed(2)),
			)
		}
		return nil
	})
}

// RecordDeposit sets the deposit and its date
func (s *PaymentService) RecordDeposit(ctx context.Context, tenantID, orderID uuid.UUID, req AmountRequest) (*PaymentResponse, error) {
	return s.run(ctx, tenantID, orderID, "record_deposit", func(o *workorder.WorkOrder) error {
		if err := o.RecordDeposit(req.Amount); err != nil {
			return err
		}
		if req.Amount.GreaterThan(o.EffectiveTotal()) {
			s.logger.Warn("deposit exceeds discounted total",
				zap.String("work_order_id", o.ID.String()),
				zap.String("deposit", req.Amount.StringFixed(2)),
				zap.String("effective_total", o.EffectiveTotal().StringFixed(2)),
			)
		}
		return nil
	})
}

// ToggleFinalPayment flips the final payment flag
func (s *PaymentService) ToggleFinalPayment(ctx context.Context, tenantID, orderID uuid.UUID) (*PaymentResponse, error) {
	return s.run(ctx, tenantID, orderID, "toggle_final_payment", func(o *workorder.WorkOrder) error {
		return o.ToggleFinalPayment()
	})
}

// CorrectTotal replaces the base total of a non-archived order
func (s *PaymentService) CorrectTotal(ctx context.Context, tenantID, orderID uuid.UUID, req AmountRequest) (*PaymentResponse, error) {
	return s.run(ctx, tenantID, orderID, "correct_total", func(o *workorder.WorkOrder) error {
		return o.CorrectTotal(req.Amount)
	})
}

func (s *PaymentService) run(ctx context.Context, tenantID, orderID uuid.UUID, op string, fn func(*workorder.WorkOrder) error) (*PaymentResponse, error) {
	order, err := s.mutate(ctx, tenantID, orderID, op, fn)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(order)
	return &resp, nil
}

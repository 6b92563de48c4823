package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/order"
	"equishare-storefront/internal/repository"
)

type orderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	publisher OrderPublisher
	email     EmailService
	push      PushService
}

// NewOrderService wires order persistence. publisher, email and push are
// optional and may be nil.
func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, publisher OrderPublisher, email EmailService, push PushService) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		publisher: publisher,
		email:     email,
		push:      push,
	}
}

// SubmitOrder persists an order built in a session and announces it.
// Notification failures are logged and do not fail the submission.
func (s *orderService) SubmitOrder(ctx context.Context, sessionID string, order domain.OrderRecord) (domain.OrderRecord, error) {
	logger.EnterMethod("orderService.SubmitOrder", "orderID", order.ID, "sessionID", sessionID)

	if err := s.orderRepo.Create(ctx, &order); err != nil {
		logger.ExitMethodWithError("orderService.SubmitOrder", err, "orderID", order.ID)
		return domain.OrderRecord{}, fmt.Errorf("failed to store order: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, sessionID, order); err != nil {
			logger.Error("Failed to publish order event", "orderID", order.ID, "error", err)
		}
	}
	s.notify(ctx, order)

	logger.ExitMethod("orderService.SubmitOrder", "orderID", order.ID)
	return order, nil
}

func (s *orderService) notify(ctx context.Context, order domain.OrderRecord) {
	if order.ActorID == 0 || (s.email == nil && s.push == nil) {
		return
	}
	user, err := s.userRepo.GetByID(ctx, order.ActorID)
	if err != nil {
		logger.Warn("Cannot notify order owner", "orderID", order.ID, "actorID", order.ActorID, "error", err)
		return
	}

	if s.email != nil {
		if err := s.email.SendOrderConfirmation(ctx, user.Email, user.Name, order); err != nil {
			logger.Error("Failed to send order confirmation", "orderID", order.ID, "error", err)
		}
	}
	if s.push != nil {
		n := domain.Notification{
			ActorID: user.ID,
			Email:   user.Email,
			Title:   "Order placed",
			Message: fmt.Sprintf("Order #%d for %d day(s), total %s", order.ID, order.DurationDays, formatRupees(order.TotalCents)),
			Attributes: map[string]string{
				"orderId": strconv.FormatInt(order.ID, 10),
				"status":  string(order.Status),
			},
		}
		if err := s.push.Send(ctx, n); err != nil {
			logger.Error("Failed to send order push", "orderID", order.ID, "error", err)
		}
	}
}

func (s *orderService) ListOrders(ctx context.Context, actorID int64) ([]domain.OrderRecord, error) {
	return s.orderRepo.ListByActor(ctx, actorID)
}

// UpdateStatus applies a lifecycle transition to a stored order. Repeating the
// current status is a no-op.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) error {
	if !status.Valid() {
		return domain.NewValidationError("status", errors.New("unknown order status"))
	}
	current, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == status {
		return nil
	}
	if !order.CanTransition(current.Status, status) {
		return domain.NewValidationError("status", domain.ErrInvalidTransition)
	}
	return s.orderRepo.UpdateStatus(ctx, id, status, at)
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*domain.OrderRecord, error) {
	return s.orderRepo.GetByID(ctx, id)
}

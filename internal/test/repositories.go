package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/eshop-orders/internal/domain/errors"
	"github.com/polkiloo/eshop-orders/internal/domain/model"
)

// StatusUpdate records one UpdateStatus invocation.
type StatusUpdate struct {
	OrderID       int64
	Status        model.OrderStatus
	FailureReason *string
}

// OrderRepositoryStub stores orders in-memory for tests.
type OrderRepositoryStub struct {
	Orders    map[int64]*model.Order
	Next      int64
	CreateErr error
	UpdateErr error
	Updates   []StatusUpdate
	mu        sync.Mutex
}

// NewOrderRepositoryStub constructs stub repository with initialized state.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

// Create persists order in CREATED state unless stub has explicit error.
func (s *OrderRepositoryStub) Create(ctx context.Context, productID, quantity, amount int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	order := &model.Order{
		ID:        s.Next,
		ProductID: productID,
		Quantity:  quantity,
		Amount:    amount,
		Status:    model.OrderStatusCreated,
		OrderDate: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.Next++
	s.Orders[order.ID] = order
	return order, nil
}

// GetByID returns stored order or ErrNotFound.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	snapshot := *order
	return &snapshot, nil
}

// UpdateStatus applies the transition, enforcing forward-only semantics.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, failureReason *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	order, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if order.Status.Terminal() {
		return domainErrors.ErrOrderFinalized
	}
	order.Status = status
	order.FailureReason = failureReason
	order.UpdatedAt = time.Now()
	s.Updates = append(s.Updates, StatusUpdate{OrderID: orderID, Status: status, FailureReason: failureReason})
	return nil
}

// MarkStaleFailed fails CREATED orders older than the threshold.
func (s *OrderRepositoryStub) MarkStaleFailed(ctx context.Context, olderThan time.Time, limit int) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reason := "abandoned: no terminal state recorded"
	var ids []int64
	for id, order := range s.Orders {
		if len(ids) >= limit {
			break
		}
		if order.Status == model.OrderStatusCreated && order.OrderDate.Before(olderThan) {
			order.Status = model.OrderStatusFailed
			order.FailureReason = &reason
			ids = append(ids, id)
		}
	}
	return ids, nil
}

package use_cases

import (
	"context"

	"github.com/skillforge/checkout-service/internal/application/ports"
	"github.com/skillforge/checkout-service/internal/domain/cart"
	"github.com/skillforge/checkout-service/internal/domain/checkout"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

// CartView is the cart plus its derived read-only attributes.
type CartView struct {
	Items    []cart.Item `json:"items"`
	Count    int         `json:"count"`
	Subtotal float64     `json:"subtotal"`
}

type CartUseCase struct {
	store ports.UserStateStore
	log   *logger.Logger
}

func NewCartUseCase(store ports.UserStateStore, log *logger.Logger) *CartUseCase {
	return &CartUseCase{
		store: store,
		log:   log,
	}
}

func (uc *CartUseCase) GetCart(ctx context.Context, userID string) (*CartView, error) {
	userCart, err := uc.store.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return view(userCart), nil
}

// AddItem inserts the course unless it is already in the cart. The
// no-op case is not an error; the cart is simply returned unchanged.
func (uc *CartUseCase) AddItem(ctx context.Context, userID string, item cart.Item) (*CartView, error) {
	userCart, err := uc.store.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if userCart.Add(item) {
		uc.persist(ctx, userID, userCart)
		uc.invalidateHold(ctx, userID)
	}

	return view(userCart), nil
}

func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, courseID string) (*CartView, error) {
	userCart, err := uc.store.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if userCart.Remove(courseID) {
		uc.persist(ctx, userID, userCart)
		uc.invalidateHold(ctx, userID)
	}

	return view(userCart), nil
}

func (uc *CartUseCase) ClearCart(ctx context.Context, userID string) error {
	if err := uc.store.ClearCart(ctx, userID); err != nil {
		uc.log.Error("Failed to clear cart", "error", err, "user_id", userID)
		return err
	}
	uc.invalidateHold(ctx, userID)
	return nil
}

func (uc *CartUseCase) Contains(ctx context.Context, userID, courseID string) (bool, error) {
	userCart, err := uc.store.GetCart(ctx, userID)
	if err != nil {
		return false, err
	}
	return userCart.Contains(courseID), nil
}

// persist mirrors the cart to durable storage. A write failure is
// logged and swallowed: the in-memory cart stays authoritative for the
// current request.
func (uc *CartUseCase) persist(ctx context.Context, userID string, userCart *cart.Cart) {
	if err := uc.store.SaveCart(ctx, userID, userCart); err != nil {
		uc.log.Error("Failed to persist cart", "error", err, "user_id", userID)
	}
}

// invalidateHold drops the cached hold and payment session whenever the
// cart mutates. A hold minted from a different cart snapshot must never
// be submitted against.
func (uc *CartUseCase) invalidateHold(ctx context.Context, userID string) {
	hold, err := uc.store.GetHold(ctx, userID)
	if err != nil || hold == nil {
		return
	}

	uc.log.Info("Cart changed, invalidating enrollment hold", "user_id", userID, "hold_id", hold.ID)

	if err := uc.store.ClearHold(ctx, userID); err != nil {
		uc.log.Error("Failed to clear hold", "error", err, "user_id", userID)
	}
	if err := uc.store.ClearPaymentSession(ctx, userID); err != nil {
		uc.log.Error("Failed to clear payment session", "error", err, "user_id", userID)
	}
	if err := uc.store.SetCheckoutState(ctx, userID, checkout.StateIdle); err != nil {
		uc.log.Error("Failed to reset checkout state", "error", err, "user_id", userID)
	}
}

func view(c *cart.Cart) *CartView {
	return &CartView{
		Items:    c.Items,
		Count:    c.Count(),
		Subtotal: c.Subtotal(),
	}
}

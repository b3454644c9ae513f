// Package checkout carries the shipping address and cart snapshot from the address
// step to the payment step. Nothing here is written to a database.
package checkout

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sportmarket/internal/domain"
	"sportmarket/internal/store/cart"
)

var (
	// ErrEmptyCart is returned when the address step is submitted with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoPendingCheckout is returned when payment is attempted before the address step.
	ErrNoPendingCheckout = errors.New("no checkout in progress")
)

// Handoff is what the address step hands to the payment step.
type Handoff struct {
	Address string            `json:"address"`
	Total   int64             `json:"total"`
	Count   int               `json:"cartCount"`
	Items   []domain.LineItem `json:"items"`
}

// Receipt summarises a completed payment step.
type Receipt struct {
	Reference string            `json:"reference"`
	Address   string            `json:"address"`
	Total     int64             `json:"total"`
	Items     []domain.LineItem `json:"items"`
	PaidAt    time.Time         `json:"paidAt"`
}

// Session is the shopper state the flow reads and writes.
type Session interface {
	Cart() *cart.Store
	PendingCheckout() (Handoff, bool)
	SetPendingCheckout(h Handoff)
	ClearPendingCheckout()
}

// Flow drives the two checkout steps.
type Flow struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewFlow(logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{logger: logger, now: time.Now}
}

// Begin validates addr and records the handoff on sess. On error sess is untouched.
func (f *Flow) Begin(sess Session, addr Address) (Handoff, error) {
	if err := addr.Validate(); err != nil {
		return Handoff{}, err
	}
	snap := sess.Cart().Snapshot()
	if len(snap.Items) == 0 {
		return Handoff{}, ErrEmptyCart
	}

	h := Handoff{
		Address: addr.Format(),
		Total:   snap.Total,
		Count:   snap.Count,
		Items:   snap.Items,
	}
	sess.SetPendingCheckout(h)
	f.logger.Debug("checkout address accepted", zap.Int("line_items", len(h.Items)), zap.Int64("total", h.Total))
	return h, nil
}

// Pay completes the payment step: the cart and the pending handoff are cleared.
// The total is recomputed from the cart so it reflects any change since Begin.
func (f *Flow) Pay(sess Session) (Receipt, error) {
	h, ok := sess.PendingCheckout()
	if !ok {
		return Receipt{}, ErrNoPendingCheckout
	}
	snap := sess.Cart().Snapshot()
	if len(snap.Items) == 0 {
		sess.ClearPendingCheckout()
		return Receipt{}, ErrEmptyCart
	}

	r := Receipt{
		Reference: uuid.NewString(),
		Address:   h.Address,
		Total:     snap.Total,
		Items:     snap.Items,
		PaidAt:    f.now().UTC(),
	}
	sess.Cart().Clear()
	sess.ClearPendingCheckout()
	f.logger.Info("checkout completed", zap.String("reference", r.Reference), zap.Int64("total", r.Total))
	return r, nil
}

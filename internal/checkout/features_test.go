package checkout_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"sportmarket/internal/catalog"
	"sportmarket/internal/checkout"
	"sportmarket/internal/domain"
	"sportmarket/internal/session"
)

type shoppingContext struct {
	catalog *catalog.Catalog
	shopper *session.Shopper
	flow    *checkout.Flow
	receipt checkout.Receipt
	err     error
}

func (s *shoppingContext) reset() {
	s.catalog = catalog.New()
	s.shopper = session.NewRegistry(0, nil).Get("anon:feature")
	s.flow = checkout.NewFlow(nil)
	s.receipt = checkout.Receipt{}
	s.err = nil
}

func (s *shoppingContext) aNewShopper() error {
	s.reset()
	return nil
}

func (s *shoppingContext) iAddProductWithoutASize(id int) error {
	d := s.catalog.Detail(id)
	p, _ := s.catalog.Product(id)
	s.shopper.Cart().Add(domain.CartProduct{ProductID: id, Name: p.Name, UnitPrice: d.Price, ListPrice: d.MRP})
	return nil
}

func (s *shoppingContext) iAddProductInSize(id int, size string) error {
	p, err := s.catalog.CartProduct(id, size)
	if err != nil {
		s.err = err
		return nil
	}
	s.shopper.Cart().Add(p)
	return nil
}

func (s *shoppingContext) iSetTheQuantityWithoutASize(id, qty int) error {
	s.shopper.Cart().UpdateQuantity(id, qty, "")
	return nil
}

func (s *shoppingContext) iRemoveProductInSize(id int, size string) error {
	s.shopper.Cart().Remove(id, size)
	return nil
}

func (s *shoppingContext) iLikeProduct(id int) error {
	p, ok := s.catalog.Product(id)
	if !ok {
		return fmt.Errorf("product %d not listed", id)
	}
	s.shopper.Wishlist().Add(p)
	return nil
}

func (s *shoppingContext) iSubmitTheAddressWithCity(city string) error {
	_, s.err = s.flow.Begin(s.shopper, checkout.Address{
		FullName: "Asha Rao",
		Street:   "12 MG Road",
		City:     city,
		State:    "MH",
		Zip:      "411001",
	})
	return nil
}

func (s *shoppingContext) iPay() error {
	s.receipt, s.err = s.flow.Pay(s.shopper)
	return s.err
}

func (s *shoppingContext) theCartHasLineItems(n int) error {
	if got := s.shopper.Cart().Len(); got != n {
		return fmt.Errorf("expected %d line items, got %d", n, got)
	}
	return nil
}

func (s *shoppingContext) productWithoutASizeHasQuantity(id, qty int) error {
	for _, it := range s.shopper.Cart().Items() {
		if it.ProductID == id && it.Variant == "" {
			if it.Quantity != qty {
				return fmt.Errorf("expected quantity %d, got %d", qty, it.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("no line item for product %d without a size", id)
}

func (s *shoppingContext) theCartTotalIs(total int64) error {
	if got := s.shopper.Cart().Total(); got != total {
		return fmt.Errorf("expected total %d, got %d", total, got)
	}
	return nil
}

func (s *shoppingContext) theCartCountIs(n int) error {
	if got := s.shopper.Cart().Count(); got != n {
		return fmt.Errorf("expected count %d, got %d", n, got)
	}
	return nil
}

func (s *shoppingContext) theCartIsEmpty() error {
	return s.theCartHasLineItems(0)
}

func (s *shoppingContext) theLastActionFailedWith(text string) error {
	if s.err == nil {
		return fmt.Errorf("expected an error containing %q", text)
	}
	if !strings.Contains(s.err.Error(), text) {
		return fmt.Errorf("expected error containing %q, got %q", text, s.err.Error())
	}
	return nil
}

func (s *shoppingContext) theWishlistHasItems(n int) error {
	if got := s.shopper.Wishlist().Count(); got != n {
		return fmt.Errorf("expected %d wishlist items, got %d", n, got)
	}
	return nil
}

func (s *shoppingContext) noCheckoutIsPending() error {
	if _, ok := s.shopper.PendingCheckout(); ok {
		return fmt.Errorf("expected no pending checkout")
	}
	return nil
}

func (s *shoppingContext) aCheckoutIsPendingWithTotal(total int64) error {
	h, ok := s.shopper.PendingCheckout()
	if !ok {
		return fmt.Errorf("expected a pending checkout, last error %v", s.err)
	}
	if h.Total != total {
		return fmt.Errorf("expected pending total %d, got %d", total, h.Total)
	}
	return nil
}

func (s *shoppingContext) theReceiptTotalIs(total int64) error {
	if s.receipt.Total != total {
		return fmt.Errorf("expected receipt total %d, got %d", total, s.receipt.Total)
	}
	if s.receipt.Reference == "" {
		return fmt.Errorf("expected receipt reference")
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	sc := &shoppingContext{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	// Given / When
	ctx.Step(`^a new shopper$`, sc.aNewShopper)
	ctx.Step(`^I add product (\d+) without a size$`, sc.iAddProductWithoutASize)
	ctx.Step(`^I add product (\d+) in size "([^"]*)"$`, sc.iAddProductInSize)
	ctx.Step(`^I set the quantity of product (\d+) without a size to (-?\d+)$`, sc.iSetTheQuantityWithoutASize)
	ctx.Step(`^I remove product (\d+) in size "([^"]*)"$`, sc.iRemoveProductInSize)
	ctx.Step(`^I like product (\d+)$`, sc.iLikeProduct)
	ctx.Step(`^I submit the address with city "([^"]*)"$`, sc.iSubmitTheAddressWithCity)
	ctx.Step(`^I pay$`, sc.iPay)

	// Then
	ctx.Step(`^the cart has (\d+) line items?$`, sc.theCartHasLineItems)
	ctx.Step(`^product (\d+) without a size has quantity (\d+)$`, sc.productWithoutASizeHasQuantity)
	ctx.Step(`^the cart total is (\d+)$`, sc.theCartTotalIs)
	ctx.Step(`^the cart count is (\d+)$`, sc.theCartCountIs)
	ctx.Step(`^the cart is empty$`, sc.theCartIsEmpty)
	ctx.Step(`^the last action failed with "([^"]*)"$`, sc.theLastActionFailedWith)
	ctx.Step(`^the wishlist has (\d+) items?$`, sc.theWishlistHasItems)
	ctx.Step(`^no checkout is pending$`, sc.noCheckoutIsPending)
	ctx.Step(`^a checkout is pending with total (\d+)$`, sc.aCheckoutIsPendingWithTotal)
	ctx.Step(`^the receipt total is (\d+)$`, sc.theReceiptTotalIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "shopping",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/shopping.feature"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

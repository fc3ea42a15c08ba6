package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/pkg/database"
)

func TestCheckout_EmptyCart(t *testing.T) {
	setupDB(t)
	buyer := seedUser(t, "buyer", models.RoleBuyer)
	svc := NewOrderService()

	_, err := svc.Checkout(buyer.ID)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestCheckout(t *testing.T) {
	setupDB(t)
	buyer := seedUser(t, "buyer", models.RoleBuyer)
	seller := seedUser(t, "seller", models.RoleSeller)
	a := seedProduct(t, seller.ID, "A", 10.00, 5, models.ProductApproved, fp(2.0))
	b := seedProduct(t, seller.ID, "B", 5.00, 5, models.ProductApproved, nil)

	carts := NewCartService()
	_, err := carts.Add(buyer.ID, AddToCartInput{ProductID: a.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = carts.Add(buyer.ID, AddToCartInput{ProductID: b.ID, Quantity: 1})
	require.NoError(t, err)

	svc := NewOrderService()
	res, err := svc.Checkout(buyer.ID)
	require.NoError(t, err)

	assert.InDelta(t, 25.00, res.TotalAmount, 1e-9)
	assert.InDelta(t, 4.0, res.TotalCarbonFootprint, 1e-9, "unknown footprints count as zero")
	assert.Equal(t, models.OrderPending, res.Status)
	assert.Equal(t, "Order placed", res.Message)

	// Stock was decremented.
	var gotA, gotB models.Product
	require.NoError(t, database.DB.First(&gotA, a.ID).Error)
	require.NoError(t, database.DB.First(&gotB, b.ID).Error)
	assert.Equal(t, 3, gotA.Quantity)
	assert.Equal(t, 4, gotB.Quantity)

	// Cart was cleared.
	items, err := carts.Items(buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Lines snapshot unit price and line footprint at checkout time.
	order, err := svc.Get(buyer.ID, res.OrderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 2)

	byProduct := map[uint]models.OrderItem{}
	for _, it := range order.Items {
		byProduct[it.ProductID] = it
	}
	require.NotNil(t, byProduct[a.ID].CarbonFootprint)
	assert.InDelta(t, 4.0, *byProduct[a.ID].CarbonFootprint, 1e-9)
	assert.InDelta(t, 10.00, byProduct[a.ID].Price, 1e-9)
	assert.Nil(t, byProduct[b.ID].CarbonFootprint)
}

func TestCheckout_InsufficientStockRollsBack(t *testing.T) {
	setupDB(t)
	buyer := seedUser(t, "buyer", models.RoleBuyer)
	seller := seedUser(t, "seller", models.RoleSeller)
	a := seedProduct(t, seller.ID, "A", 10.00, 5, models.ProductApproved, fp(2.0))
	c := seedProduct(t, seller.ID, "C", 8.00, 2, models.ProductApproved, fp(1.0))

	carts := NewCartService()
	_, err := carts.Add(buyer.ID, AddToCartInput{ProductID: a.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = carts.Add(buyer.ID, AddToCartInput{ProductID: c.ID, Quantity: 2})
	require.NoError(t, err)

	// Stock drops out from under the cart.
	require.NoError(t, database.DB.Model(&c).Update("quantity", 1).Error)

	svc := NewOrderService()
	_, err = svc.Checkout(buyer.ID)
	assert.True(t, errors.Is(err, ErrConflict))

	// Nothing committed: no orders, no lines, cart and stock intact.
	var orderCount, itemCount int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, database.DB.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)

	items, err := carts.Items(buyer.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	var gotA models.Product
	require.NoError(t, database.DB.First(&gotA, a.ID).Error)
	assert.Equal(t, 5, gotA.Quantity)
}

func TestCheckout_UnavailableProduct(t *testing.T) {
	setupDB(t)
	buyer := seedUser(t, "buyer", models.RoleBuyer)
	seller := seedUser(t, "seller", models.RoleSeller)
	a := seedProduct(t, seller.ID, "A", 10.00, 5, models.ProductApproved, fp(2.0))

	carts := NewCartService()
	_, err := carts.Add(buyer.ID, AddToCartInput{ProductID: a.ID, Quantity: 1})
	require.NoError(t, err)

	// Admin pulls the product after it entered the cart.
	require.NoError(t, database.DB.Model(&a).Update("status", models.ProductRejected).Error)

	svc := NewOrderService()
	_, err = svc.Checkout(buyer.ID)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestOrderHistory_Ownership(t *testing.T) {
	setupDB(t)
	buyer := seedUser(t, "buyer", models.RoleBuyer)
	other := seedUser(t, "other", models.RoleBuyer)
	seller := seedUser(t, "seller", models.RoleSeller)
	a := seedProduct(t, seller.ID, "A", 10.00, 5, models.ProductApproved, fp(2.0))

	carts := NewCartService()
	_, err := carts.Add(buyer.ID, AddToCartInput{ProductID: a.ID, Quantity: 1})
	require.NoError(t, err)

	svc := NewOrderService()
	res, err := svc.Checkout(buyer.ID)
	require.NoError(t, err)

	mine, err := svc.ForBuyer(buyer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, res.OrderID, mine[0].ID)

	theirs, err := svc.ForBuyer(other.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = svc.Get(other.ID, res.OrderID)
	assert.True(t, errors.Is(err, ErrForbidden))

	_, err = svc.Get(buyer.ID, 999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestOrderImmutableAfterProductChange(t *testing.T) {
	setupDB(t)
	buyer := seedUser(t, "buyer", models.RoleBuyer)
	seller := seedUser(t, "seller", models.RoleSeller)
	a := seedProduct(t, seller.ID, "A", 10.00, 5, models.ProductApproved, fp(2.0))

	carts := NewCartService()
	_, err := carts.Add(buyer.ID, AddToCartInput{ProductID: a.ID, Quantity: 1})
	require.NoError(t, err)

	svc := NewOrderService()
	res, err := svc.Checkout(buyer.ID)
	require.NoError(t, err)

	// Later price hike must not rewrite history.
	require.NoError(t, database.DB.Model(&a).Update("price", 99.99).Error)

	order, err := svc.Get(buyer.ID, res.OrderID)
	require.NoError(t, err)
	assert.InDelta(t, 10.00, order.TotalAmount, 1e-9)
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 10.00, order.Items[0].Price, 1e-9)
}

func TestCheckout_ConcurrentLastUnit(t *testing.T) {
	setupFileDB(t)
	first := seedUser(t, "first", models.RoleBuyer)
	second := seedUser(t, "second", models.RoleBuyer)
	seller := seedUser(t, "seller", models.RoleSeller)
	p := seedProduct(t, seller.ID, "Last Unit", 10.00, 1, models.ProductApproved, fp(2.0))

	carts := NewCartService()
	_, err := carts.Add(first.ID, AddToCartInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = carts.Add(second.ID, AddToCartInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	// Both buyers race for the single unit. Exactly one checkout commits;
	// the other hits the conditional decrement (or sees zero stock) and
	// rolls back with a conflict.
	svc := NewOrderService()
	buyers := []uint{first.ID, second.ID}
	errs := make([]error, len(buyers))

	var wg sync.WaitGroup
	for i, buyerID := range buyers {
		wg.Add(1)
		go func(i int, buyerID uint) {
			defer wg.Done()
			_, errs[i] = svc.Checkout(buyerID)
		}(i, buyerID)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrConflict):
			lost++
		default:
			t.Fatalf("unexpected checkout error: %v", err)
		}
	}
	assert.Equal(t, 1, won, "exactly one checkout must succeed")
	assert.Equal(t, 1, lost, "the other must fail with a stock conflict")

	var got models.Product
	require.NoError(t, database.DB.First(&got, p.ID).Error)
	assert.Equal(t, 0, got.Quantity, "stock must never go negative")

	var orders, lines int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, database.DB.Model(&models.CartItem{}).Count(&lines).Error)
	assert.Equal(t, int64(1), orders)
	assert.Equal(t, int64(1), lines, "the loser's cart line survives the rollback")
}

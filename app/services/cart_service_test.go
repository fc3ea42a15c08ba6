package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/pkg/database"
)

func TestCartAdd(t *testing.T) {
	setupDB(t)
	buyer := seedUser(t, "buyer", models.RoleBuyer)
	seller := seedUser(t, "seller", models.RoleSeller)
	p := seedProduct(t, seller.ID, "A", 10, 5, models.ProductApproved, fp(2))
	svc := NewCartService()

	line, err := svc.Add(buyer.ID, AddToCartInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, buyer.ID, line.BuyerID)
}

func TestCartAdd_MergesQuantities(t *testing.T) {
	setupDB(t)
	buyer := seedUser(t, "buyer", models.RoleBuyer)
	seller := seedUser(t, "seller", models.RoleSeller)
	p := seedProduct(t, seller.ID, "A", 10, 5, models.ProductApproved, fp(2))
	svc := NewCartService()

	_, err := svc.Add(buyer.ID, AddToCartInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	line, err := svc.Add(buyer.ID, AddToCartInput{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)

	// Still a single row for the (buyer, product) pair.
	items, err := svc.Items(buyer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCartAdd_StockCap(t *testing.T) {
	setupDB(t)
	buyer := seedUser(t, "buyer", models.RoleBuyer)
	seller := seedUser(t, "seller", models.RoleSeller)
	p := seedProduct(t, seller.ID, "A", 10, 3, models.ProductApproved, fp(2))
	svc := NewCartService()

	_, err := svc.Add(buyer.ID, AddToCartInput{ProductID: p.ID, Quantity: 4})
	assert.True(t, errors.Is(err, ErrConflict))

	_, err = svc.Add(buyer.ID, AddToCartInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.Add(buyer.ID, AddToCartInput{ProductID: p.ID, Quantity: 2})
	assert.True(t, errors.Is(err, ErrConflict), "merged quantity must not exceed stock")
}

func TestCartAdd_RejectsUnapprovedProduct(t *testing.T) {
	setupDB(t)
	buyer := seedUser(t, "buyer", models.RoleBuyer)
	seller := seedUser(t, "seller", models.RoleSeller)
	pending := seedProduct(t, seller.ID, "P", 10, 5, models.ProductPending, fp(2))
	svc := NewCartService()

	_, err := svc.Add(buyer.ID, AddToCartInput{ProductID: pending.ID, Quantity: 1})
	assert.True(t, errors.Is(err, ErrConflict))

	_, err = svc.Add(buyer.ID, AddToCartInput{ProductID: 999, Quantity: 1})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCartUpdateAndRemove_Ownership(t *testing.T) {
	setupDB(t)
	buyer := seedUser(t, "buyer", models.RoleBuyer)
	other := seedUser(t, "other", models.RoleBuyer)
	seller := seedUser(t, "seller", models.RoleSeller)
	p := seedProduct(t, seller.ID, "A", 10, 5, models.ProductApproved, fp(2))
	svc := NewCartService()

	line, err := svc.Add(buyer.ID, AddToCartInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.UpdateItem(other.ID, line.ID, UpdateCartInput{Quantity: 2})
	assert.True(t, errors.Is(err, ErrForbidden))

	err = svc.RemoveItem(other.ID, line.ID)
	assert.True(t, errors.Is(err, ErrForbidden))

	updated, err := svc.UpdateItem(buyer.ID, line.ID, UpdateCartInput{Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	_, err = svc.UpdateItem(buyer.ID, line.ID, UpdateCartInput{Quantity: 6})
	assert.True(t, errors.Is(err, ErrConflict))

	require.NoError(t, svc.RemoveItem(buyer.ID, line.ID))
	err = svc.RemoveItem(buyer.ID, line.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCartItems_PurgesDeletedProducts(t *testing.T) {
	setupDB(t)
	buyer := seedUser(t, "buyer", models.RoleBuyer)
	seller := seedUser(t, "seller", models.RoleSeller)
	a := seedProduct(t, seller.ID, "A", 10, 5, models.ProductApproved, fp(2))
	b := seedProduct(t, seller.ID, "B", 5, 5, models.ProductApproved, nil)
	svc := NewCartService()

	_, err := svc.Add(buyer.ID, AddToCartInput{ProductID: a.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.Add(buyer.ID, AddToCartInput{ProductID: b.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, database.DB.Delete(&a).Error)

	items, err := svc.Items(buyer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ProductID)
	assert.InDelta(t, 5.0, items[0].Subtotal, 1e-9)
	assert.Zero(t, items[0].LineFootprint)
	assert.Nil(t, items[0].CarbonFootprint)

	// The orphaned line is gone from the cart itself, not just the view.
	var lines int64
	require.NoError(t, database.DB.Model(&models.CartItem{}).
		Where("buyer_id = ?", buyer.ID).Count(&lines).Error)
	assert.Equal(t, int64(1), lines)
}

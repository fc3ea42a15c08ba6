package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ecobazaar/app/models"
)

func TestCreateProduct_DerivesFootprint(t *testing.T) {
	setupDB(t)
	seller := seedUser(t, "greengoods", models.RoleSeller)
	svc := NewProductService()

	p, err := svc.Create(seller.ID, CreateProductInput{
		Name:      "Bamboo Toothbrush",
		Price:     3.50,
		Quantity:  100,
		EcoRating: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ProductPending, p.Status)
	assert.Equal(t, seller.ID, p.SellerID)
	require.NotNil(t, p.CarbonFootprint)
	assert.InDelta(t, 0.1, *p.CarbonFootprint, 1e-9)
}

func TestCreateProduct_ExplicitFootprintWins(t *testing.T) {
	setupDB(t)
	seller := seedUser(t, "greengoods", models.RoleSeller)
	svc := NewProductService()

	p, err := svc.Create(seller.ID, CreateProductInput{
		Name:            "Solar Charger",
		Price:           49.99,
		Quantity:        10,
		EcoRating:       8,
		CarbonFootprint: fp(2.5),
	})
	require.NoError(t, err)
	require.NotNil(t, p.CarbonFootprint)
	assert.InDelta(t, 2.5, *p.CarbonFootprint, 1e-9)
}

func TestDerivedCarbonFootprint(t *testing.T) {
	assert.InDelta(t, 15.0, models.DerivedCarbonFootprint(0), 1e-9)
	assert.InDelta(t, 7.55, models.DerivedCarbonFootprint(5), 1e-9)
	assert.InDelta(t, 0.1, models.DerivedCarbonFootprint(10), 1e-9)
}

func TestApproveAndReject(t *testing.T) {
	setupDB(t)
	seller := seedUser(t, "greengoods", models.RoleSeller)
	a := seedProduct(t, seller.ID, "A", 10, 5, models.ProductPending, fp(1))
	b := seedProduct(t, seller.ID, "B", 20, 5, models.ProductPending, fp(1))
	svc := NewProductService()

	approved, err := svc.Approve(a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductApproved, approved.Status)

	rejected, err := svc.Reject(b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductRejected, rejected.Status)

	pending, err := svc.ListPending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApprove_MissingProduct(t *testing.T) {
	setupDB(t)
	svc := NewProductService()

	_, err := svc.Approve(999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetApproved_HidesUnreviewed(t *testing.T) {
	setupDB(t)
	seller := seedUser(t, "greengoods", models.RoleSeller)
	pending := seedProduct(t, seller.ID, "Pending", 10, 5, models.ProductPending, fp(1))
	rejected := seedProduct(t, seller.ID, "Rejected", 10, 5, models.ProductRejected, fp(1))
	live := seedProduct(t, seller.ID, "Live", 10, 5, models.ProductApproved, fp(1))
	svc := NewProductService()

	_, err := svc.GetApproved(pending.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.GetApproved(rejected.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	got, err := svc.GetApproved(live.ID)
	require.NoError(t, err)
	assert.Equal(t, "Live", got.Name)
}

func TestDeleteProduct_Ownership(t *testing.T) {
	setupDB(t)
	owner := seedUser(t, "owner", models.RoleSeller)
	rival := seedUser(t, "rival", models.RoleSeller)
	admin := seedUser(t, "root", models.RoleAdmin)
	p := seedProduct(t, owner.ID, "A", 10, 5, models.ProductApproved, fp(1))
	q := seedProduct(t, owner.ID, "B", 10, 5, models.ProductApproved, fp(1))
	svc := NewProductService()

	err := svc.Delete(p.ID, rival.ID, rival.Role)
	assert.True(t, errors.Is(err, ErrForbidden))

	require.NoError(t, svc.Delete(p.ID, owner.ID, owner.Role))
	require.NoError(t, svc.Delete(q.ID, admin.ID, admin.Role))

	left, err := svc.ListBySeller(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

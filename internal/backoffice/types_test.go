package backoffice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPurchaseOrderTotal(t *testing.T) {
	po := PurchaseOrder{Lines: []PurchaseOrderLine{
		{Quantity: 3, UnitCost: decimal.RequireFromString("12.50")},
		{Quantity: 1, UnitCost: decimal.RequireFromString("100")},
	}}

	assert.True(t, po.Total().Equal(decimal.RequireFromString("137.5")))
	assert.True(t, PurchaseOrder{}.Total().IsZero())
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, User{Role: RoleAdmin}.IsAdmin())
	assert.False(t, User{Role: RoleCustomer}.IsAdmin())
}

// Package order creates orders from carts and tracks their status.
//
// An order's items and total are fixed when it is placed. Items are deep
// copies of the cart snapshots and the total is computed once; later
// catalog changes never reach a placed order. Only status fields change
// afterwards.
package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roach88/poolstore/internal/cart"
)

var (
	// ErrEmptyCart is returned when placing an order from an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingCustomer is returned when an order has no customer email.
	ErrMissingCustomer = errors.New("customer email is required")
	// ErrNotFound is returned when no order has the requested ID.
	ErrNotFound = errors.New("order not found")
	// ErrInvalidStatus is returned for an unknown order or supplier status.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrNotDropship is returned when setting the supplier status of an
	// order without drop-shipped lines.
	ErrNotDropship = errors.New("order has no drop-shipped items")
)

// Status is the workflow state of an order.
type Status string

const (
	StatusPending    Status = "En attente"
	StatusProcessing Status = "En cours"
	StatusShipped    Status = "Expédiée"
	StatusCompleted  Status = "Terminée"
	StatusCancelled  Status = "Annulée"
)

// Statuses lists every order status in workflow order.
var Statuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled}

// SupplierStatus tracks supplier fulfilment of drop-shipped lines.
type SupplierStatus string

const (
	SupplierPending   SupplierStatus = "En attente"
	SupplierOrdered   SupplierStatus = "Commandée"
	SupplierShipped   SupplierStatus = "Expédiée"
	SupplierDelivered SupplierStatus = "Livrée"
)

// SupplierStatuses lists every supplier status in workflow order.
var SupplierStatuses = []SupplierStatus{SupplierPending, SupplierOrdered, SupplierShipped, SupplierDelivered}

// Customer identifies who placed an order.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Address is a shipping address.
type Address struct {
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Country    string `json:"country,omitempty"`
}

// Order is a placed order.
type Order struct {
	ID             string          `json:"id"`
	CustomerName   string          `json:"customerName"`
	CustomerEmail  string          `json:"customerEmail"`
	Date           time.Time       `json:"date"`
	Items          []cart.Item     `json:"items"`
	Total          decimal.Decimal `json:"total"`
	Status         Status          `json:"status"`
	Shipping       *Address        `json:"shippingAddress,omitempty"`
	HasDropship    bool            `json:"hasDropshipping,omitempty"`
	SupplierStatus SupplierStatus  `json:"supplierStatus,omitempty"`
}

// DisplayID is the identifier shown to customers.
func (o Order) DisplayID() string {
	return "#" + o.ID
}

// Clone deep-copies orders so callers cannot reach stored line items or
// addresses.
func Clone(orders []Order) []Order {
	if orders == nil {
		return nil
	}
	out := make([]Order, len(orders))
	for i, o := range orders {
		o.Items = cart.Snapshot(o.Items)
		if o.Shipping != nil {
			addr := *o.Shipping
			o.Shipping = &addr
		}
		out[i] = o
	}
	return out
}

// Place builds a pending order from the cart. The total is the rounded
// tax-inclusive cart total at this moment.
func Place(items []cart.Item, c Customer, shipping *Address, now time.Time, id string) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}
	if strings.TrimSpace(c.Email) == "" {
		return Order{}, ErrMissingCustomer
	}

	snapshot := cart.Snapshot(items)
	o := Order{
		ID:            id,
		CustomerName:  c.Name,
		CustomerEmail: c.Email,
		Date:          now,
		Items:         snapshot,
		Total:         cart.Totals(snapshot).Round(2).Gross,
		Status:        StatusPending,
	}
	if shipping != nil {
		addr := *shipping
		o.Shipping = &addr
	}
	for _, it := range snapshot {
		if it.Product.Dropship {
			o.HasDropship = true
			o.SupplierStatus = SupplierPending
			break
		}
	}
	return o, nil
}

// NextID returns one more than the highest numeric order ID, or first
// when there is none.
func NextID(orders []Order, first int) string {
	next := first
	for _, o := range orders {
		n, err := strconv.Atoi(o.ID)
		if err != nil {
			continue
		}
		if n >= next {
			next = n + 1
		}
	}
	return strconv.Itoa(next)
}

// Find returns the order with the given ID. A leading "#" is ignored.
func Find(orders []Order, id string) (Order, bool) {
	id = strings.TrimPrefix(id, "#")
	for _, o := range orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// ForCustomer returns the orders placed with the given email, most recent first.
func ForCustomer(orders []Order, email string) []Order {
	var out []Order
	for i := len(orders) - 1; i >= 0; i-- {
		if strings.EqualFold(orders[i].CustomerEmail, email) {
			out = append(out, orders[i])
		}
	}
	return out
}

// SetStatus changes the status of one order.
func SetStatus(orders []Order, id string, s Status) ([]Order, error) {
	if !validStatus(s) {
		return orders, fmt.Errorf("set status %q: %w", s, ErrInvalidStatus)
	}
	return update(orders, id, func(o *Order) error {
		o.Status = s
		return nil
	})
}

// SetSupplierStatus changes the supplier status of a drop-shipped order.
func SetSupplierStatus(orders []Order, id string, s SupplierStatus) ([]Order, error) {
	if !validSupplierStatus(s) {
		return orders, fmt.Errorf("set supplier status %q: %w", s, ErrInvalidStatus)
	}
	return update(orders, id, func(o *Order) error {
		if !o.HasDropship {
			return ErrNotDropship
		}
		o.SupplierStatus = s
		return nil
	})
}

func update(orders []Order, id string, fn func(*Order) error) ([]Order, error) {
	id = strings.TrimPrefix(id, "#")
	for i, o := range orders {
		if o.ID != id {
			continue
		}
		if err := fn(&o); err != nil {
			return orders, fmt.Errorf("order %s: %w", id, err)
		}
		out := make([]Order, len(orders))
		copy(out, orders)
		out[i] = o
		return out, nil
	}
	return orders, fmt.Errorf("order %s: %w", id, ErrNotFound)
}

// ParseStatus accepts a status label ("Terminée") or its English key ("completed").
func ParseStatus(s string) (Status, error) {
	keys := map[string]Status{
		"pending":    StatusPending,
		"processing": StatusProcessing,
		"shipped":    StatusShipped,
		"completed":  StatusCompleted,
		"cancelled":  StatusCancelled,
	}
	if st, ok := keys[strings.ToLower(s)]; ok {
		return st, nil
	}
	if validStatus(Status(s)) {
		return Status(s), nil
	}
	return "", fmt.Errorf("parse status %q: %w", s, ErrInvalidStatus)
}

func validStatus(s Status) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

func validSupplierStatus(s SupplierStatus) bool {
	for _, v := range SupplierStatuses {
		if v == s {
			return true
		}
	}
	return false
}

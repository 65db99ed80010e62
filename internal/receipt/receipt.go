// Package receipt derives printable receipts from order records.
// A Receipt is a read-only projection built on demand and discarded when
// its view closes; nothing in here is ever persisted.
package receipt

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"refnet-client/internal/logger"
	"refnet-client/internal/order"
)

type LineItem struct {
	Name     string
	Quantity int
	Price    float64
}

// Amount is the charged amount for the line: unit price times quantity.
func (i LineItem) Amount() float64 {
	return i.Price * float64(i.Quantity)
}

type Receipt struct {
	OrderID      string
	Date         time.Time
	CustomerName string
	Items        []LineItem
	Total        float64
	Status       string
}

// ItemCount sums the quantities across all line items.
func (r Receipt) ItemCount() int {
	total := 0
	for _, item := range r.Items {
		total += item.Quantity
	}
	return total
}

// ItemTotal sums the charged amounts across all line items. It is an
// independent value from Total, which is the order's stored total; a
// rendered receipt shows both verbatim.
func (r Receipt) ItemTotal() float64 {
	total := 0.0
	for _, item := range r.Items {
		total += item.Amount()
	}
	return total
}

// Synthesize projects an order record into a Receipt. Pure: the same order
// always yields a field-for-field identical receipt.
//
// CustomerName carries the owning user's numeric identifier, not the
// display name. The upstream schema only embeds the user id on the order
// record, and the receipt keeps whatever the record supplies rather than
// issuing a second lookup.
func Synthesize(o order.Order) Receipt {
	return Receipt{
		OrderID:      o.OrderID,
		Date:         o.OrderDate,
		CustomerName: fmt.Sprintf("%d", o.UserID),
		Items: []LineItem{
			{
				Name:     o.Products.Name,
				Quantity: o.Quantity,
				Price:    o.UnitPrice,
			},
		},
		Total:  o.TotalPrice,
		Status: string(o.Status),
	}
}

// Log dumps a receipt-style record of the order to the structured log.
// Return initiation and review submission both leave this trace.
func Log(o order.Order) {
	log := logger.L().With(
		zap.String("order_id", o.OrderID),
		zap.Time("date", o.OrderDate),
		zap.String("status", string(o.Status)),
		zap.Float64("total", o.TotalPrice),
	)

	log.Info("receipt",
		zap.String("item", o.Products.Name),
		zap.Float64("price", o.UnitPrice),
		zap.Int("quantity", o.Quantity),
	)
}

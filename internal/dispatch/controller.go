// Package dispatch is the dispatcher board controller: the full order
// list, the driver roster, and the assignment workflow. Like the profile
// screen it is single-goroutine view state; the filter is never stored as
// a separate order list, only as a tag projected on demand.
package dispatch

import (
	"context"

	"go.uber.org/zap"

	"refnet-client/internal/backend"
	"refnet-client/internal/logger"
	"refnet-client/internal/notify"
	"refnet-client/internal/order"
)

// Filter is the active board tab. Visibility is recomputed from the tag
// on every VisibleOrders call, so the tag can never drift from the data.
type Filter string

const (
	FilterAll        Filter = "all-orders"
	FilterDispatched Filter = "dispatched"
	FilterPending    Filter = "pending"
	FilterAssigned   Filter = "assigned"
)

type Controller struct {
	svc      backend.Service
	notifier notify.Notifier

	orders  []order.Order
	drivers []order.Driver
	filter  Filter
}

func New(svc backend.Service, notifier notify.Notifier) *Controller {
	return &Controller{
		svc:      svc,
		notifier: notifier,
		filter:   FilterAll,
	}
}

// Load fetches the board's orders and the driver roster. Either fetch
// failing leaves the corresponding list untouched and reports the error.
func (c *Controller) Load(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	orders, err := c.svc.Orders(ctx)
	if err != nil {
		log.Error("failed to fetch orders", zap.Error(err))
		c.notifier.Notify("Failed to load orders", notify.SeverityError)
		return err
	}
	c.orders = orders

	drivers, err := c.svc.Drivers(ctx)
	if err != nil {
		log.Error("failed to fetch drivers", zap.Error(err))
		c.notifier.Notify("Failed to load drivers", notify.SeverityError)
		return err
	}
	c.drivers = drivers

	return nil
}

func (c *Controller) SetFilter(f Filter) {
	c.filter = f
}

func (c *Controller) Filter() Filter {
	return c.filter
}

// VisibleOrders projects the active tag onto the order list. The tabs
// named after delivery stages match through the stage mapping rather than
// the raw status string, so "dispatched" covers every in-transit status.
func (c *Controller) VisibleOrders() []order.Order {
	var pred func(order.Order) bool
	switch c.filter {
	case FilterDispatched:
		pred = func(o order.Order) bool { return order.StageOf(o.Status) == order.StageDispatched }
	case FilterPending:
		pred = func(o order.Order) bool { return order.StageOf(o.Status) == order.StagePending }
	case FilterAssigned:
		pred = func(o order.Order) bool { return o.Assigned() }
	default:
		return c.orders
	}

	visible := make([]order.Order, 0, len(c.orders))
	for _, o := range c.orders {
		if pred(o) {
			visible = append(visible, o)
		}
	}
	return visible
}

// CanAssign reports whether the assignment controls are shown for an
// order: payment has completed and nobody is assigned yet.
func (c *Controller) CanAssign(o order.Order) bool {
	return o.PaymentStatus == order.PaymentCompleted && !o.Assigned()
}

// Assign hands an order to a driver via the backend and, on success,
// records the driver on the order in local state so the assignment
// controls disappear. On failure the order stays unassigned.
func (c *Controller) Assign(ctx context.Context, orderID string, driverID uint) error {
	idx := -1
	for i, o := range c.orders {
		if o.OrderID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return order.ErrOrderNotFound
	}

	target := c.orders[idx]
	if target.Assigned() {
		return order.ErrAlreadyAssigned
	}
	if target.PaymentStatus != order.PaymentCompleted {
		return order.ErrPaymentPending
	}

	driver, ok := c.findDriver(driverID)
	if !ok {
		return order.ErrDriverNotFound
	}

	if err := c.svc.AssignDriver(ctx, orderID, driverID); err != nil {
		logger.FromCtx(ctx).Error("failed to assign driver",
			zap.String("order_id", orderID),
			zap.Uint("driver_id", driverID),
			zap.Error(err),
		)
		c.notifier.Notify("Failed to assign driver", notify.SeverityError)
		return err
	}

	c.orders[idx].AssignedTo = driver.FullName
	c.notifier.Notify("Driver assigned successfully", notify.SeveritySuccess)
	return nil
}

func (c *Controller) Orders() []order.Order {
	return c.orders
}

func (c *Controller) Drivers() []order.Driver {
	return c.drivers
}

func (c *Controller) findDriver(id uint) (order.Driver, bool) {
	for _, d := range c.drivers {
		if d.ID == id {
			return d, true
		}
	}
	return order.Driver{}, false
}

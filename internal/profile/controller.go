// Package profile is the customer profile screen controller: one customer
// record, their orders and service requests, and the modal views layered
// over them. All state is private to one screen lifetime and touched from
// a single goroutine, so there is no locking anywhere.
package profile

import (
	"context"

	"go.uber.org/zap"

	"refnet-client/internal/backend"
	"refnet-client/internal/logger"
	"refnet-client/internal/notify"
	"refnet-client/internal/order"
	"refnet-client/internal/receipt"
	"refnet-client/internal/session"
)

// Modal identifies which sheet is open. At most one is active at a time;
// the receipt view is not a Modal because it stacks over the order detail
// instead of replacing it.
type Modal string

const (
	ModalNone     Modal = ""
	ModalPersonal Modal = "personal"
	ModalOrders   Modal = "orders"
	ModalReview   Modal = "review"
	ModalServices Modal = "services"
)

// ReturnInitiator files a return for a delivered order. The backend has no
// such endpoint yet, so the default implementation only reports success;
// the real call plugs in here once it exists.
type ReturnInitiator interface {
	InitiateReturn(ctx context.Context, orderID string) error
}

type noopReturns struct{}

func (noopReturns) InitiateReturn(ctx context.Context, orderID string) error { return nil }

type Controller struct {
	svc      backend.Service
	exporter *receipt.Exporter
	notifier notify.Notifier
	returns  ReturnInitiator
	sess     session.Session

	customer order.Customer
	orders   []order.Order
	services []order.ServiceRequest

	activeModal Modal
	editing     bool
	refreshing  bool

	selectedOrder   *order.Order
	selectedProduct *order.Order
	rating          int
	comment         string

	receiptVisible bool
	currentReceipt *receipt.Receipt
}

func New(svc backend.Service, exporter *receipt.Exporter, notifier notify.Notifier, sess session.Session) *Controller {
	return &Controller{
		svc:      svc,
		exporter: exporter,
		notifier: notifier,
		returns:  noopReturns{},
		sess:     sess,
	}
}

// SetReturnInitiator swaps the pluggable return collaborator.
func (c *Controller) SetReturnInitiator(r ReturnInitiator) {
	c.returns = r
}

// --- Fetching ---

// FetchCustomer looks the signed-in customer up by email. Without a
// session identity the fetch is simply not issued; that is not an error.
func (c *Controller) FetchCustomer(ctx context.Context) error {
	if !c.sess.SignedIn() {
		return nil
	}

	customer, err := c.svc.CheckUser(ctx, c.sess.Email)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch customer", zap.Error(err))
		c.notifier.Notify("Failed to load profile", notify.SeverityError)
		return err
	}

	c.customer = customer
	return nil
}

// FetchOrders loads the customer's orders. Skipped until the customer
// record (and so the user id) is known.
func (c *Controller) FetchOrders(ctx context.Context) error {
	if c.customer.UserID == 0 {
		return nil
	}

	orders, err := c.svc.CustomerOrders(ctx, c.customer.UserID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch orders", zap.Error(err))
		c.notifier.Notify("Failed to load orders", notify.SeverityError)
		return err
	}

	c.orders = orders
	return nil
}

// FetchServices loads the customer's requested services. Skipped until the
// user id is known.
func (c *Controller) FetchServices(ctx context.Context) error {
	if c.customer.UserID == 0 {
		return nil
	}

	services, err := c.svc.RequestedServices(ctx, c.customer.UserID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch services", zap.Error(err))
		c.notifier.Notify("Failed to load service requests", notify.SeverityError)
		return err
	}

	c.services = services
	return nil
}

// Refresh runs the pull-to-refresh cycle: profile, orders, services, one
// after another. A failure in any fetch is logged and does not block the
// rest, and the in-progress flag always clears.
func (c *Controller) Refresh(ctx context.Context) {
	c.refreshing = true
	defer func() { c.refreshing = false }()

	log := logger.FromCtx(ctx)

	if err := c.FetchCustomer(ctx); err != nil {
		log.Error("refresh: customer fetch failed", zap.Error(err))
	}
	if err := c.FetchOrders(ctx); err != nil {
		log.Error("refresh: orders fetch failed", zap.Error(err))
	}
	if err := c.FetchServices(ctx); err != nil {
		log.Error("refresh: services fetch failed", zap.Error(err))
	}
}

// --- Modal navigation ---

// OpenModal activates one sheet, replacing whichever was active.
func (c *Controller) OpenModal(m Modal) {
	if c.activeModal != ModalNone {
		c.CloseModal()
	}
	c.activeModal = m
}

// CloseModal dismisses the active sheet and resets its transient sub-state
// so the next open starts clean.
func (c *Controller) CloseModal() {
	switch c.activeModal {
	case ModalPersonal:
		c.editing = false
	case ModalOrders:
		c.selectedOrder = nil
		c.CloseReceipt()
	case ModalReview:
		c.selectedProduct = nil
		c.rating = 0
		c.comment = ""
	}
	c.activeModal = ModalNone
}

// --- Orders modal ---

// SelectOrder moves the orders modal from the list to the detail view.
func (c *Controller) SelectOrder(orderID string) error {
	o, ok := c.findOrder(orderID)
	if !ok {
		return order.ErrOrderNotFound
	}
	c.selectedOrder = &o
	return nil
}

// Back returns from the order detail to the list.
func (c *Controller) Back() {
	c.selectedOrder = nil
}

// Stage is the delivery progress step shown on the detail view, derived
// from the selected order's fulfillment status.
func (c *Controller) Stage() order.DeliveryStage {
	if c.selectedOrder == nil {
		return order.StagePending
	}
	return order.StageOf(c.selectedOrder.Status)
}

// CanReturn reports whether the return action is offered for an order.
func (c *Controller) CanReturn(o order.Order) bool {
	return o.Delivered()
}

// InitiateReturn files a return for a delivered order, logs a receipt
// trace, and drops back to the order list.
func (c *Controller) InitiateReturn(ctx context.Context, orderID string) {
	o, ok := c.findOrder(orderID)
	if !ok || !c.CanReturn(o) {
		return
	}

	if err := c.returns.InitiateReturn(ctx, orderID); err != nil {
		logger.FromCtx(ctx).Error("failed to initiate return",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		c.notifier.Notify("Failed to initiate return", notify.SeverityError)
		return
	}

	c.notifier.Notify("Return request initiated", notify.SeveritySuccess)
	receipt.Log(o)
	c.selectedOrder = nil
}

// --- Receipt overlay ---

// ViewReceipt synthesizes a receipt for the selected order and shows it as
// an overlay. The order detail underneath stays selected.
func (c *Controller) ViewReceipt() {
	if c.selectedOrder == nil {
		return
	}
	r := receipt.Synthesize(*c.selectedOrder)
	c.currentReceipt = &r
	c.receiptVisible = true
}

// CloseReceipt dismisses the overlay and discards the derived receipt.
func (c *Controller) CloseReceipt() {
	c.receiptVisible = false
	c.currentReceipt = nil
}

// DownloadReceipt runs the export pipeline for the receipt on screen.
// Failures are reported by the exporter and leave all state unchanged.
func (c *Controller) DownloadReceipt(ctx context.Context) {
	if c.currentReceipt == nil {
		return
	}
	c.exporter.Export(ctx, *c.currentReceipt)
}

// --- Reviews modal ---

// CanReview reports whether the review action is offered for an order.
func (c *Controller) CanReview(o order.Order) bool {
	return o.Delivered()
}

// SelectProduct moves the reviews modal to the product detail, gated on
// the order having been delivered.
func (c *Controller) SelectProduct(orderID string) error {
	o, ok := c.findOrder(orderID)
	if !ok {
		return order.ErrOrderNotFound
	}
	if !c.CanReview(o) {
		return order.ErrNotDelivered
	}
	c.selectedProduct = &o
	return nil
}

// BackFromProduct returns from the product detail to the review list.
func (c *Controller) BackFromProduct() {
	c.selectedProduct = nil
}

// SetRating stores a star rating between 1 and 5. Out-of-range values are
// ignored; 0 only ever comes from a reset.
func (c *Controller) SetRating(stars int) {
	if stars < 1 || stars > 5 {
		return
	}
	c.rating = stars
}

func (c *Controller) SetComment(comment string) {
	c.comment = comment
}

// SubmitReview sends the entered rating and comment for the selected
// product's order. A rejection from the service keeps the entered state
// and the detail view open; a successful submission clears both.
func (c *Controller) SubmitReview(ctx context.Context) {
	if c.selectedProduct == nil {
		return
	}

	fb := order.Feedback{
		UserID:   c.customer.UserID,
		OrderID:  c.selectedProduct.OrderID,
		Rating:   c.rating,
		Comments: c.comment,
	}

	result, err := c.svc.SubmitFeedback(ctx, fb)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to submit feedback",
			zap.String("order_id", fb.OrderID),
			zap.Error(err),
		)
		c.notifier.Notify("Failed to submit review", notify.SeverityError)
		return
	}

	if result.Rejected() {
		c.notifier.Notify(result.Message, notify.SeverityError)
		return
	}

	c.notifier.Notify("Review submitted successfully", notify.SeveritySuccess)
	reviewed := *c.selectedProduct
	c.selectedProduct = nil
	c.rating = 0
	c.comment = ""
	receipt.Log(reviewed)
}

// --- Personal info modal ---

func (c *Controller) StartEditing() {
	c.editing = true
}

func (c *Controller) CancelEditing() {
	c.editing = false
}

// UpdateDetails stages edited profile fields in local state.
func (c *Controller) UpdateDetails(fullName, email, phone, address string) {
	c.customer.FullName = fullName
	c.customer.Email = email
	c.customer.Phone = phone
	c.customer.Address = address
}

// SaveCustomer leaves edit mode and reports success. The backend exposes
// no profile-update endpoint yet; the staged fields stay local until it
// does.
func (c *Controller) SaveCustomer() {
	c.notifier.Notify("Profile updated successfully", notify.SeveritySuccess)
	c.editing = false
}

// --- Session ---

// Logout ends the session. The embedding UI observes the cleared session
// and navigates away; nothing global is mutated.
func (c *Controller) Logout() {
	c.sess = session.Session{}
	c.customer = order.Customer{}
	c.orders = nil
	c.services = nil
	c.CloseModal()
}

// --- Accessors ---

func (c *Controller) Customer() order.Customer         { return c.customer }
func (c *Controller) Orders() []order.Order            { return c.orders }
func (c *Controller) Services() []order.ServiceRequest { return c.services }
func (c *Controller) ActiveModal() Modal               { return c.activeModal }
func (c *Controller) Editing() bool                    { return c.editing }
func (c *Controller) Refreshing() bool                 { return c.refreshing }
func (c *Controller) SelectedOrder() *order.Order      { return c.selectedOrder }
func (c *Controller) SelectedProduct() *order.Order    { return c.selectedProduct }
func (c *Controller) Rating() int                      { return c.rating }
func (c *Controller) Comment() string                  { return c.comment }
func (c *Controller) ReceiptVisible() bool             { return c.receiptVisible }
func (c *Controller) CurrentReceipt() *receipt.Receipt { return c.currentReceipt }
func (c *Controller) Session() session.Session         { return c.sess }

func (c *Controller) findOrder(orderID string) (order.Order, bool) {
	for _, o := range c.orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return order.Order{}, false
}

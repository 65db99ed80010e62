package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"refnet-client/internal/dispatch"
	"refnet-client/internal/logger"
	"refnet-client/internal/notify"
	"refnet-client/internal/profile"
)

// opCtx tags a fresh context with a request id so every backend call and
// log line of one user-triggered operation can be correlated.
func opCtx() context.Context {
	return logger.WithRequestID(context.Background(), uuid.New().String())
}

type screen int

const (
	screenProfile screen = iota
	screenDispatch
)

// initMsg triggers the first data load after the program starts.
type initMsg struct{}

// model binds the two screen controllers to the terminal. Controller
// methods are called synchronously from Update, which bubbletea runs on a
// single goroutine, so the controllers' no-locking contract holds.
type model struct {
	profile  *profile.Controller
	board    *dispatch.Controller
	status   *notify.Spy
	notifier notify.Notifier

	screen screen
	width  int
	height int

	// Per-row cards for the services modal, rebuilt whenever the
	// underlying service requests change.
	cards []*dispatch.Card

	// List cursors. cursor tracks whichever list the active view shows;
	// driverCursor only exists while picking an assignee.
	cursor       int
	driverCursor int
	picking      bool
	pickOrderID  string
}

func newModel(p *profile.Controller, b *dispatch.Controller, status *notify.Spy, notifier notify.Notifier) model {
	return model{profile: p, board: b, status: status, notifier: notifier}
}

// buildServiceCards wraps each service request in a card whose assignment
// callback files a technician request. The backend has no assignment
// endpoint for service orders yet, so the request is recorded and surfaced
// as a notification.
func (m *model) buildServiceCards() {
	services := m.profile.Services()
	cards := make([]*dispatch.Card, 0, len(services))
	for _, s := range services {
		view := dispatch.RequestView{
			ID:               s.ID,
			ServiceName:      s.ServiceDetails.Name,
			Price:            s.ServiceDetails.Price,
			Completion:       string(s.CompletionStatus),
			TechnicianName:   s.TechnicianName,
			TechnicianStatus: s.TechnicianStatus,
		}
		name := s.ServiceDetails.Name
		notifier := m.notifier
		cards = append(cards, dispatch.NewCard(view, func(ctx context.Context, requestID uint) error {
			logger.FromCtx(ctx).Info("technician requested",
				zap.Uint("service_request_id", requestID))
			notifier.Notify("Technician requested for "+name, notify.SeveritySuccess)
			return nil
		}))
	}
	m.cards = cards
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg { return initMsg{} }
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case initMsg:
		ctx := opCtx()
		m.profile.Refresh(ctx)
		if err := m.board.Load(ctx); err == nil {
			m.cursor = 0
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		if key == "q" && m.typingComment() {
			break
		}
		return m, tea.Quit
	case "tab":
		if m.screen == screenProfile {
			m.screen = screenDispatch
		} else {
			m.screen = screenProfile
		}
		m.cursor = 0
		m.picking = false
		return m, nil
	}

	if m.screen == screenProfile {
		return m.handleProfileKey(key, msg)
	}
	return m.handleDispatchKey(key)
}

// typingComment reports whether keystrokes currently feed the review
// comment field instead of acting as commands.
func (m model) typingComment() bool {
	return m.screen == screenProfile &&
		m.profile.ActiveModal() == profile.ModalReview &&
		m.profile.SelectedProduct() != nil
}

func (m model) handleProfileKey(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := opCtx()

	if m.typingComment() {
		switch key {
		case "esc":
			m.profile.BackFromProduct()
		case "enter":
			m.profile.SubmitReview(ctx)
		case "backspace":
			c := m.profile.Comment()
			if c != "" {
				m.profile.SetComment(c[:len(c)-1])
			}
		case "1", "2", "3", "4", "5":
			m.profile.SetRating(int(key[0] - '0'))
		default:
			if msg.Type == tea.KeyRunes {
				m.profile.SetComment(m.profile.Comment() + string(msg.Runes))
			}
		}
		return m, nil
	}

	switch key {
	case "r":
		m.profile.Refresh(ctx)
		if m.profile.ActiveModal() == profile.ModalServices {
			m.buildServiceCards()
		}
	case "p":
		m.profile.OpenModal(profile.ModalPersonal)
	case "o":
		m.profile.OpenModal(profile.ModalOrders)
		m.cursor = 0
	case "v":
		m.profile.OpenModal(profile.ModalReview)
		m.cursor = 0
	case "s":
		m.profile.OpenModal(profile.ModalServices)
		m.buildServiceCards()
		m.cursor = 0
	case "esc":
		switch {
		case m.profile.ReceiptVisible():
			m.profile.CloseReceipt()
		case m.profile.SelectedOrder() != nil:
			m.profile.Back()
		default:
			m.profile.CloseModal()
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		limit := len(m.profile.Orders())
		if m.profile.ActiveModal() == profile.ModalServices {
			limit = len(m.cards)
		}
		if m.cursor < limit-1 {
			m.cursor++
		}
	case "enter":
		if m.profile.ActiveModal() == profile.ModalServices {
			if m.cursor < len(m.cards) {
				card := m.cards[m.cursor]
				if card.Request.TechnicianName == "" {
					_ = card.RequestAssignment(ctx)
				}
			}
			break
		}
		orders := m.profile.Orders()
		if m.cursor >= len(orders) {
			break
		}
		id := orders[m.cursor].OrderID
		switch m.profile.ActiveModal() {
		case profile.ModalOrders:
			_ = m.profile.SelectOrder(id)
		case profile.ModalReview:
			_ = m.profile.SelectProduct(id)
		}
	case "g":
		if m.profile.SelectedOrder() != nil {
			m.profile.ViewReceipt()
		}
	case "d":
		m.profile.DownloadReceipt(ctx)
	case "t":
		if o := m.profile.SelectedOrder(); o != nil {
			m.profile.InitiateReturn(ctx, o.OrderID)
		}
	case "x":
		m.profile.Logout()
	}
	return m, nil
}

func (m model) handleDispatchKey(key string) (tea.Model, tea.Cmd) {
	ctx := opCtx()

	if m.picking {
		switch key {
		case "esc":
			m.picking = false
		case "up", "k":
			if m.driverCursor > 0 {
				m.driverCursor--
			}
		case "down", "j":
			if m.driverCursor < len(m.board.Drivers())-1 {
				m.driverCursor++
			}
		case "enter":
			drivers := m.board.Drivers()
			if m.driverCursor < len(drivers) {
				_ = m.board.Assign(ctx, m.pickOrderID, drivers[m.driverCursor].ID)
			}
			m.picking = false
		}
		return m, nil
	}

	switch key {
	case "r":
		_ = m.board.Load(ctx)
		m.cursor = 0
	case "1":
		m.setFilter(dispatch.FilterAll)
	case "2":
		m.setFilter(dispatch.FilterPending)
	case "3":
		m.setFilter(dispatch.FilterDispatched)
	case "4":
		m.setFilter(dispatch.FilterAssigned)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.board.VisibleOrders())-1 {
			m.cursor++
		}
	case "a":
		visible := m.board.VisibleOrders()
		if m.cursor >= len(visible) {
			break
		}
		o := visible[m.cursor]
		if m.board.CanAssign(o) {
			m.picking = true
			m.pickOrderID = o.OrderID
			m.driverCursor = 0
		}
	}
	return m, nil
}

func (m *model) setFilter(f dispatch.Filter) {
	m.board.SetFilter(f)
	m.cursor = 0
}

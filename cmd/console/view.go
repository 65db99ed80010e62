package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"refnet-client/internal/dispatch"
	"refnet-client/internal/notify"
	"refnet-client/internal/order"
	"refnet-client/internal/profile"
	"refnet-client/internal/receipt"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tabStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTab    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Padding(0, 1)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("REFNET"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.screen == screenProfile {
		b.WriteString(m.renderProfile())
	} else {
		b.WriteString(m.renderDispatch())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.footer()))
	return b.String()
}

func (m model) renderTabs() string {
	profileTab, dispatchTab := tabStyle, tabStyle
	if m.screen == screenProfile {
		profileTab = activeTab
	} else {
		dispatchTab = activeTab
	}
	return profileTab.Render("Profile") + dispatchTab.Render("Dispatch")
}

func (m model) renderStatus() string {
	last, ok := m.status.Last()
	if !ok {
		return ""
	}
	switch last.Severity {
	case notify.SeveritySuccess:
		return successStyle.Render(last.Message)
	case notify.SeverityWarning:
		return warningStyle.Render(last.Message)
	default:
		return errorStyle.Render(last.Message)
	}
}

func (m model) footer() string {
	if m.screen == screenDispatch {
		if m.picking {
			return "↑/↓ driver · enter assign · esc cancel"
		}
		return "1-4 filter · ↑/↓ move · a assign · r reload · tab profile · q quit"
	}
	if m.typingComment() {
		return "type comment · 1-5 rate · enter submit · esc back"
	}
	return "p/o/v/s open · ↑/↓ move · enter select · esc close · r refresh · tab dispatch · q quit"
}

// --- Profile screen ---

func (m model) renderProfile() string {
	c := m.profile.Customer()
	if !m.profile.Session().SignedIn() {
		return dimStyle.Render("Signed out.")
	}

	header := fmt.Sprintf("%s  %s", c.FullName, dimStyle.Render(c.Email))

	var body string
	switch m.profile.ActiveModal() {
	case profile.ModalPersonal:
		body = m.renderPersonal(c)
	case profile.ModalOrders:
		body = m.renderOrders()
	case profile.ModalReview:
		body = m.renderReviews()
	case profile.ModalServices:
		body = m.renderServices()
	default:
		body = dimStyle.Render(fmt.Sprintf("%d orders · %d service requests",
			len(m.profile.Orders()), len(m.profile.Services())))
	}

	if m.profile.Refreshing() {
		header += "  " + dimStyle.Render("refreshing…")
	}
	return header + "\n\n" + body
}

func (m model) renderPersonal(c order.Customer) string {
	lines := []string{
		"Name     " + c.FullName,
		"Email    " + c.Email,
		"Phone    " + c.Phone,
		"Address  " + c.Address,
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m model) renderOrders() string {
	if r := m.profile.CurrentReceipt(); r != nil && m.profile.ReceiptVisible() {
		return m.renderReceipt(*r)
	}
	if o := m.profile.SelectedOrder(); o != nil {
		return m.renderOrderDetail(*o)
	}
	return m.renderOrderList(m.profile.Orders(), nil)
}

func (m model) renderOrderDetail(o order.Order) string {
	stage := m.profile.Stage()
	steps := []order.DeliveryStage{order.StagePending, order.StageDispatched, order.StageDelivered}

	var progress []string
	for _, s := range steps {
		label := string(s)
		if s == stage {
			label = cursorStyle.Render("● " + label)
		} else {
			label = dimStyle.Render("○ " + label)
		}
		progress = append(progress, label)
	}

	lines := []string{
		titleStyle.Render("Order " + o.OrderID),
		fmt.Sprintf("%s ×%d  %s", o.Products.Name, o.Quantity, receipt.FormatPrice(o.TotalPrice)),
		strings.Join(progress, "  "),
	}
	if o.TrackingNumber != "" {
		lines = append(lines, dimStyle.Render("Tracking "+o.TrackingNumber))
	}

	actions := "g receipt"
	if m.profile.CanReturn(o) {
		actions += " · t return"
	}
	lines = append(lines, dimStyle.Render(actions))
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m model) renderOrderList(orders []order.Order, annotate func(order.Order) string) string {
	if len(orders) == 0 {
		return dimStyle.Render("No orders.")
	}
	var b strings.Builder
	for i, o := range orders {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%s%s  %-24s %s  %s",
			prefix, o.OrderID, o.Products.Name, receipt.FormatPrice(o.TotalPrice), dimStyle.Render(string(o.Status)))
		if annotate != nil {
			if extra := annotate(o); extra != "" {
				line += "  " + extra
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderReceipt(r receipt.Receipt) string {
	lines := []string{
		titleStyle.Render("Receipt · " + r.OrderID),
		dimStyle.Render(r.Date.Format("Jan 2, 2006")),
		"",
	}
	for _, item := range r.Items {
		lines = append(lines, fmt.Sprintf("%-24s ×%d  %s", item.Name, item.Quantity, receipt.FormatPrice(item.Amount())))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Items total  %s", receipt.FormatPrice(r.ItemTotal())),
		fmt.Sprintf("Total        %s", receipt.FormatPrice(r.Total)),
		"",
		dimStyle.Render("d download · esc close"),
	)
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m model) renderReviews() string {
	if p := m.profile.SelectedProduct(); p != nil {
		stars := strings.Repeat("★", m.profile.Rating()) + strings.Repeat("☆", 5-m.profile.Rating())
		lines := []string{
			titleStyle.Render("Review · " + p.Products.Name),
			stars,
			"Comment: " + m.profile.Comment() + "▌",
		}
		return boxStyle.Render(strings.Join(lines, "\n"))
	}
	return m.renderOrderList(m.profile.Orders(), func(o order.Order) string {
		if !m.profile.CanReview(o) {
			return dimStyle.Render("(not delivered)")
		}
		return ""
	})
}

func (m model) renderServices() string {
	if len(m.cards) == 0 {
		return dimStyle.Render("No service requests.")
	}
	var b strings.Builder
	for i, card := range m.cards {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%s%-24s %s  %s  %s",
			prefix, card.Request.ServiceName, receipt.FormatPrice(card.Request.Price),
			dimStyle.Render(card.Request.Completion), card.AssigneeLabel())
		if card.Busy() {
			line += "  " + dimStyle.Render("requesting…")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// --- Dispatch screen ---

func (m model) renderDispatch() string {
	filters := []dispatch.Filter{dispatch.FilterAll, dispatch.FilterPending, dispatch.FilterDispatched, dispatch.FilterAssigned}
	var tabs []string
	for i, f := range filters {
		label := fmt.Sprintf("%d %s", i+1, f)
		if f == m.board.Filter() {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(tabs, ""))
	b.WriteString("\n\n")

	visible := m.board.VisibleOrders()
	if len(visible) == 0 {
		b.WriteString(dimStyle.Render("No orders match this filter."))
		b.WriteString("\n")
	}
	for i, o := range visible {
		prefix := "  "
		if i == m.cursor && !m.picking {
			prefix = cursorStyle.Render("> ")
		}
		assignee := dimStyle.Render("unassigned")
		if o.Assigned() {
			assignee = o.AssignedTo
		}
		line := fmt.Sprintf("%s%s  %-24s %s  %s  %s",
			prefix, o.OrderID, o.Products.Name, dimStyle.Render(string(o.Status)),
			dimStyle.Render(string(o.PaymentStatus)), assignee)
		if m.board.CanAssign(o) {
			line += "  " + successStyle.Render("[a]ssign")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.picking {
		var lines []string
		lines = append(lines, titleStyle.Render("Assign driver · "+m.pickOrderID))
		for i, d := range m.board.Drivers() {
			prefix := "  "
			if i == m.driverCursor {
				prefix = cursorStyle.Render("> ")
			}
			lines = append(lines, prefix+d.FullName)
		}
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
	}

	return b.String()
}

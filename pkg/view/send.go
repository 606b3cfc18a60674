package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"wallet-console/pkg/parser"
	"wallet-console/pkg/send"
	"wallet-console/pkg/types"
)

// DialogCloser closes named dialogs
type DialogCloser interface {
	Close(name string)
}

type field int

const (
	fieldReceiver field = iota
	fieldAmount
)

// QuoteMsg carries a finished fee lookup back to the form
type QuoteMsg struct {
	Result send.Result
}

// SendModel is the interactive send form. Every edit revalidates the address
// and, when both fields are usable, requests a new fee quote. Only quotes the
// coordinator accepts are displayed.
type SendModel struct {
	ctx     context.Context
	coord   *send.Coordinator
	dialogs DialogCloser

	receiver string
	amount   string
	focus    field

	validation send.ValidationResult
	amountErr  error
	inFlight   uint64
	quote      *send.Result
	fatal      error
	confirmed  bool
}

// NewSendModel creates the form with optional initial values
func NewSendModel(ctx context.Context, coord *send.Coordinator, dialogs DialogCloser, receiver, amount string) SendModel {
	m := SendModel{
		ctx:      ctx,
		coord:    coord,
		dialogs:  dialogs,
		receiver: receiver,
		amount:   amount,
	}
	if receiver != "" {
		m.focus = fieldAmount
	}
	return m
}

// Confirmed reports whether the user confirmed the send
func (m SendModel) Confirmed() bool {
	return m.confirmed
}

// Err returns the error that ended the form, if any
func (m SendModel) Err() error {
	return m.fatal
}

// Quote returns the displayed quote
func (m SendModel) Quote() (send.Result, bool) {
	if m.quote == nil {
		return send.Result{}, false
	}
	return *m.quote, true
}

func (m SendModel) Init() tea.Cmd {
	if m.receiver == "" && m.amount == "" {
		return nil
	}
	return func() tea.Msg { return refreshMsg{} }
}

type refreshMsg struct{}

func waitQuote(p *send.Pending) tea.Cmd {
	return func() tea.Msg {
		return QuoteMsg{Result: <-p.Done()}
	}
}

func (m SendModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return m.edited()
	case QuoteMsg:
		// Lookups for input the form no longer holds are dropped even when
		// no newer request was issued.
		if msg.Result.Seq != m.inFlight {
			return m, nil
		}
		if m.coord.Accept(msg.Result) {
			r := msg.Result
			m.quote = &r
			m.inFlight = 0
		}
		return m, nil
	case tea.KeyMsg:
		if m.coord.IsDialogOpen(send.ConfirmationDialog) {
			return m.updateDialog(msg)
		}
		return m.updateForm(msg)
	}
	return m, nil
}

func (m SendModel) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirmed = true
		m.dialogs.Close(send.ConfirmationDialog)
		return m, tea.Quit
	case "n", "N", "esc":
		m.dialogs.Close(send.ConfirmationDialog)
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m SendModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		if m.focus == fieldReceiver {
			m.focus = fieldAmount
		} else {
			m.focus = fieldReceiver
		}
		return m, nil
	case tea.KeyEnter:
		if m.canConfirm() {
			m.coord.OpenConfirmationDialog()
		}
		return m, nil
	case tea.KeyBackspace:
		target := m.focused()
		if r := []rune(*target); len(r) > 0 {
			*target = string(r[:len(r)-1])
		}
		return m.edited()
	case tea.KeyRunes, tea.KeySpace:
		target := m.focused()
		*target += string(msg.Runes)
		return m.edited()
	}
	return m, nil
}

func (m *SendModel) focused() *string {
	if m.focus == fieldReceiver {
		return &m.receiver
	}
	return &m.amount
}

// edited revalidates the form and requests a fresh quote
func (m SendModel) edited() (SendModel, tea.Cmd) {
	m.validation = m.coord.ValidateAddress(m.receiver)
	m.quote = nil

	amount, err := parser.ParseAmount(m.amount)
	m.amountErr = err
	if !m.validation.Valid || err != nil {
		m.inFlight = 0
		return m, nil
	}

	p, err := m.coord.QuoteFee(m.ctx, types.Address(strings.TrimSpace(m.receiver)), amount)
	if err != nil {
		m.fatal = err
		return m, tea.Quit
	}
	m.inFlight = p.Seq
	return m, waitQuote(p)
}

func (m SendModel) canConfirm() bool {
	return m.validation.Valid && m.amountErr == nil && m.quote != nil && m.quote.Err == nil
}

func (m SendModel) View() string {
	if m.fatal != nil {
		return errStyle.Render("Error: "+m.fatal.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(logoStyle.Render("Send"))
	b.WriteString("\n\n")

	b.WriteString(m.renderField("To", m.receiver, fieldReceiver))
	if m.receiver != "" && !m.validation.Valid {
		b.WriteString("  " + errStyle.Render(m.validation.Reason))
	}
	b.WriteString("\n")

	b.WriteString(m.renderField("Amount", m.amount, fieldAmount))
	if m.amount != "" && m.amountErr != nil {
		b.WriteString("  " + errStyle.Render(m.amountErr.Error()))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderQuote())
	b.WriteString("\n\n")

	if m.coord.IsDialogOpen(send.ConfirmationDialog) && m.quote != nil {
		q := m.quote.Quote
		body := fmt.Sprintf("Send %s %s to\n%s\n\nFee:   %s %s\nTotal: %s %s\n\n[y] confirm   [n] back",
			q.Request.Amount.String(), q.Symbol, q.Request.Receiver,
			q.Fee.String(), q.Symbol, q.Total().String(), q.Symbol)
		b.WriteString(dialogStyle.Render(body))
		return b.String()
	}

	b.WriteString(hintStyle.Render("tab switch field • enter confirm • esc quit"))
	return b.String()
}

func (m SendModel) renderField(label, value string, f field) string {
	cursor := " "
	if m.focus == f {
		cursor = focusStyle.Render(">")
		value += focusStyle.Render("_")
	}
	return cursor + " " + labelStyle.Render(label) + value
}

func (m SendModel) renderQuote() string {
	switch {
	case m.quote != nil && m.quote.Err != nil:
		return renderQuoteError(m.quote.Err)
	case m.quote != nil:
		q := m.quote.Quote
		line := okStyle.Render(fmt.Sprintf("Fee: %s %s", q.Fee.String(), q.Symbol))
		if q.Detail != "" {
			line += "  " + hintStyle.Render(q.Detail)
		}
		return line
	case m.inFlight != 0:
		return hintStyle.Render("Estimating fee...")
	default:
		return hintStyle.Render("Fee: -")
	}
}

func renderQuoteError(err error) string {
	switch {
	case send.IsRetryable(err):
		return warnStyle.Render("Network unavailable, edit to retry: " + err.Error())
	case errors.Is(err, send.ErrInsufficientFunds):
		return errStyle.Render("Insufficient funds: " + err.Error())
	default:
		return errStyle.Render(err.Error())
	}
}

package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	StatusNew       = "NEW"
	StatusContacted = "CONTACTED"
	StatusWon       = "WON"
	StatusLost      = "LOST"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Display formats kept from the JSON files this service inherited; the
// records must stay readable by anything that already parses them.
const (
	TimestampLayout = "2006-01-02 15:04"
	ClockLayout     = "15:04"
)

// Message is one entry in a lead's negotiation thread. Entries are
// append-only: never reordered, never mutated, never deleted.
type Message struct {
	Role    string `json:"role"`
	Time    string `json:"time"`
	Content string `json:"content"`
}

// Lead is a customer's submitted requirement plus its classifier assessment
// and the admin/customer chat thread. Email ties the lead to exactly one
// registered user.
type Lead struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Status    string `json:"status"`

	Intent         string `json:"intent"`
	Category       string `json:"category"`
	Score          int    `json:"score"`
	Reasoning      string `json:"reasoning"`
	EstimatedQuote string `json:"estimated_quote"`
	EmailSubject   string `json:"email_subject"`
	EmailBody      string `json:"email_body"`

	ChatHistory []Message `json:"chat_history"`
}

// NewLead seeds the chat thread with one assistant message carrying the
// drafted email body, and starts every lead at NEW.
func NewLead(name, email, phone, message string, assessment Assessment) (*Lead, error) {
	now := time.Now()

	lead := &Lead{
		ID:        uuid.New().String(),
		Timestamp: now.Format(TimestampLayout),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Message:   message,
		Status:    StatusNew,

		Intent:         assessment.Intent,
		Category:       assessment.Category,
		Score:          assessment.Score,
		Reasoning:      assessment.Reasoning,
		EstimatedQuote: assessment.EstimatedQuote,
		EmailSubject:   assessment.EmailSubject,
		EmailBody:      assessment.EmailBody,

		ChatHistory: []Message{
			{Role: RoleAssistant, Time: now.Format(ClockLayout), Content: assessment.EmailBody},
		},
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Email == "" {
		return errors.New("email is required")
	}
	if l.Message == "" {
		return errors.New("message is required")
	}
	if !ValidStatus(l.Status) {
		return errors.New("status must be NEW, CONTACTED, WON or LOST")
	}
	return nil
}

func ValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusContacted, StatusWon, StatusLost:
		return true
	}
	return false
}

// IsTerminal reports whether the lead reached a final customer decision.
// No status transition leads out of a terminal state; only chat append and
// the documented admin reopen remain possible.
func (l *Lead) IsTerminal() bool {
	return l.Status == StatusWon || l.Status == StatusLost
}

// AppendMessage stamps the entry with the wall clock and appends it.
func (l *Lead) AppendMessage(role, content string) {
	l.ChatHistory = append(l.ChatHistory, Message{
		Role:    role,
		Time:    time.Now().Format(ClockLayout),
		Content: content,
	})
}

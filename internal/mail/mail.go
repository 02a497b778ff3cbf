// Package mail delivers verification codes by email.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"sync"

	"github.com/jaevor/go-nanoid"

	"markeep/internal/config"
)

const (
	codeAlphabet = "0123456789"
	codeLength   = 6
)

// Purpose distinguishes the flows a verification code can unlock.
type Purpose string

const (
	PurposeJoin          Purpose = "join"
	PurposePasswordReset Purpose = "password_reset"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// CodeGenerator returns numeric verification codes.
type CodeGenerator func() string

func NewCodeGenerator() (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(codeAlphabet, codeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize code generator: %w", err)
	}
	return CodeGenerator(gen), nil
}

// CodeMessage renders the mail carrying a verification code.
func CodeMessage(to string, purpose Purpose, code string) Message {
	subject := "[Markeep] Email verification code"
	intro := "Use the code below to finish signing up for Markeep."
	if purpose == PurposePasswordReset {
		subject = "[Markeep] Password reset code"
		intro = "Use the code below to reset your Markeep password."
	}
	return Message{
		To:      to,
		Subject: subject,
		Body:    fmt.Sprintf("%s\n\nVerification code: %s\n\nIf you did not request this, you can ignore this email.\n", intro, code),
	}
}

// NewSender returns an SMTP sender when a host is configured and a logging
// sender otherwise.
func NewSender(cfg config.MailConfig, logger *slog.Logger) Sender {
	if cfg.Host == "" {
		return &LogSender{logger: logger}
	}
	return &SMTPSender{cfg: cfg}
}

type SMTPSender struct {
	cfg config.MailConfig
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	if err := smtp.SendMail(addr, auth, from, []string{msg.To}, buildMessage(from, msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("mail not delivered, no smtp host configured",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}

// MemorySender keeps messages in memory.
type MemorySender struct {
	mu       sync.Mutex
	messages []Message
	Err      error
}

func (s *MemorySender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.messages = append(s.messages, msg)
	return nil
}

// Last returns the most recent message sent to the address.
func (s *MemorySender) Last(to string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].To == to {
			return s.messages[i], true
		}
	}
	return Message{}, false
}

// CodeFrom extracts the verification code from a message rendered by CodeMessage.
func CodeFrom(msg Message) string {
	_, rest, ok := strings.Cut(msg.Body, "Verification code: ")
	if !ok {
		return ""
	}
	code, _, _ := strings.Cut(rest, "\n")
	return code
}

package email

import (
	"fmt"
	"net/smtp"
)

// Service sends mail via SMTP.
type Service struct {
	host string
	port string
	from string
}

func NewService(host, port, from string) *Service {
	return &Service{host: host, port: port, from: from}
}

// SendTradeReceipt mails a plain-text receipt for a completed trade.
func (s *Service) SendTradeReceipt(to, name, tradeUUID string, total int64, items []ReceiptItem) error {
	shortID := tradeUUID
	if len(tradeUUID) > 8 {
		shortID = tradeUUID[:8]
	}
	subject := fmt.Sprintf("Your cafe order %s", shortID)
	body := BuildTradeReceiptBody(name, tradeUUID, total, items)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}

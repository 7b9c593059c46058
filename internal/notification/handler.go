package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/cafe-backend/internal/domain/item"
	"github.com/example/cafe-backend/internal/domain/member"
	"github.com/example/cafe-backend/internal/domain/trade"
	"github.com/example/cafe-backend/internal/email"
)

// Mailer is the slice of the email service the notifier needs.
type Mailer interface {
	SendTradeReceipt(to, name, tradeUUID string, total int64, items []email.ReceiptItem) error
}

// Handler consumes trade events and mails receipts. Lookup failures
// degrade gracefully: a missing catalog name falls back to the item id,
// and a missing member just skips the mail.
type Handler struct {
	mailer  Mailer
	members member.Store
	items   item.Store
}

func NewHandler(mailer Mailer, members member.Store, items item.Store) *Handler {
	return &Handler{mailer: mailer, members: members, items: items}
}

// HandleMessage processes one event from the stream.
func (h *Handler) HandleMessage(ctx context.Context, key, value []byte) error {
	var env trade.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	if env.Type != trade.EventTradeCreated {
		return nil
	}

	var e trade.TradeCreated
	if err := json.Unmarshal(env.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal TradeCreated: %v", err)
		return err
	}

	return h.handleTradeCreated(ctx, e)
}

func (h *Handler) handleTradeCreated(ctx context.Context, e trade.TradeCreated) error {
	m, err := h.members.FindMember(ctx, e.MemberID)
	if err != nil {
		log.Printf("[Notifier] Member %d not found for trade %s: %v", e.MemberID, e.TradeUUID, err)
		return nil
	}

	receiptItems := make([]email.ReceiptItem, len(e.Items))
	for i, ti := range e.Items {
		name := itemName(ctx, h.items, ti.ItemID)
		receiptItems[i] = email.ReceiptItem{
			Name:      name,
			Quantity:  ti.Quantity,
			UnitPrice: ti.UnitPrice,
		}
	}

	if err := h.mailer.SendTradeReceipt(m.Email, m.Name, e.TradeUUID, e.Total, receiptItems); err != nil {
		log.Printf("[Notifier] Failed to send receipt to %s: %v", m.Email, err)
		return err
	}

	log.Printf("[Notifier] Receipt sent to %s for trade %s", m.Email, e.TradeUUID)
	return nil
}

func itemName(ctx context.Context, items item.Store, itemID int64) string {
	it, err := items.FindItem(ctx, itemID)
	if err != nil {
		return fmt.Sprintf("item %d", itemID)
	}
	return it.Name
}

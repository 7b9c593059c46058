package trade

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/cafe-backend/internal/domain/cart"
	"github.com/example/cafe-backend/internal/metrics"
	"github.com/google/uuid"
)

// uuidAttempts bounds the retry loop on trade_uuid collisions. With a
// 128-bit random identifier a second collision in a row is not a thing
// that happens; the bound just keeps the loop finite when a store
// misbehaves.
const uuidAttempts = 3

// Publisher is the slice of the event producer the ledger needs.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Ledger converts line items into immutable trades and answers purchase
// queries. Cache and publisher are optional; a nil publisher simply
// skips event emission.
type Ledger struct {
	store     Store
	cartCache cart.Cache
	publisher Publisher
}

func NewLedger(store Store, cartCache cart.Cache, publisher Publisher) *Ledger {
	return &Ledger{store: store, cartCache: cartCache, publisher: publisher}
}

// CreateTrade persists a trade snapshotting the given lines and clears
// the member's cart in the same transaction. All-or-nothing: any
// persistence fault surfaces as ErrTradeCreationFailed with no partial
// trade and no cart clearing, so the caller may retry safely.
func (l *Ledger) CreateTrade(ctx context.Context, memberID int64, lines []cart.Line) (*Trade, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyTrade
	}

	items := make([]Item, 0, len(lines))
	var total int64
	for _, line := range lines {
		items = append(items, Item{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
		total += line.UnitPrice * int64(line.Quantity)
	}

	var t *Trade
	for attempt := 0; ; attempt++ {
		t = &Trade{
			TradeUUID: uuid.New().String(),
			MemberID:  memberID,
			Items:     items,
			Total:     total,
			CreatedAt: time.Now(),
		}

		err := l.store.CreateTrade(ctx, t)
		if err == nil {
			break
		}
		if errors.Is(err, ErrDuplicateTradeUUID) && attempt < uuidAttempts-1 {
			log.Printf("[Ledger] trade_uuid collision for member %d, retrying", memberID)
			continue
		}
		return nil, fmt.Errorf("%w: %v", ErrTradeCreationFailed, err)
	}

	metrics.TradesCreated.Inc()

	if l.cartCache != nil {
		if err := l.cartCache.Delete(ctx, memberID); err != nil {
			log.Printf("[Ledger] Failed to invalidate cart cache for member %d: %v", memberID, err)
		}
	}

	l.publishCreated(ctx, t)
	return t, nil
}

// FindByTradeUUID re-fetches a trade by its external identifier.
// Idempotent; used by payment confirmation and receipt flows.
func (l *Ledger) FindByTradeUUID(ctx context.Context, tradeUUID string) (*Trade, error) {
	return l.store.FindByTradeUUID(ctx, tradeUUID)
}

// ListByMember returns the member's trades, newest first.
func (l *Ledger) ListByMember(ctx context.Context, memberID int64) ([]*Trade, error) {
	return l.store.ListByMember(ctx, memberID)
}

// ExistsPurchase reports whether the member has ever traded the item.
func (l *Ledger) ExistsPurchase(ctx context.Context, memberID, itemID int64) (bool, error) {
	return l.store.ExistsPurchase(ctx, memberID, itemID)
}

// publishCreated emits TradeCreated best-effort. The trade is already
// committed; a publish failure is logged, never surfaced.
func (l *Ledger) publishCreated(ctx context.Context, t *Trade) {
	if l.publisher == nil {
		return
	}

	env, err := NewEnvelope(EventTradeCreated, TradeCreated{
		TradeUUID: t.TradeUUID,
		MemberID:  t.MemberID,
		Items:     t.Items,
		Total:     t.Total,
		CreatedAt: t.CreatedAt,
	})
	if err != nil {
		log.Printf("[Ledger] Failed to encode TradeCreated for %s: %v", t.TradeUUID, err)
		return
	}

	if err := l.publisher.Publish(ctx, t.TradeUUID, env); err != nil {
		log.Printf("[Ledger] Failed to publish TradeCreated for %s: %v", t.TradeUUID, err)
	}
}

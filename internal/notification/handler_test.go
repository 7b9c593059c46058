package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cafe-backend/internal/domain/item"
	"github.com/example/cafe-backend/internal/domain/member"
	"github.com/example/cafe-backend/internal/domain/trade"
	"github.com/example/cafe-backend/internal/email"
	"github.com/example/cafe-backend/internal/infrastructure/store"
)

type recordingMailer struct {
	to        string
	name      string
	tradeUUID string
	total     int64
	items     []email.ReceiptItem
	sends     int
}

func (m *recordingMailer) SendTradeReceipt(to, name, tradeUUID string, total int64, items []email.ReceiptItem) error {
	m.to = to
	m.name = name
	m.tradeUUID = tradeUUID
	m.total = total
	m.items = items
	m.sends++
	return nil
}

func tradeCreatedPayload(t *testing.T, e trade.TradeCreated) []byte {
	t.Helper()
	env, err := trade.NewEnvelope(trade.EventTradeCreated, e)
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)
	return data
}

func TestHandleMessage_SendsReceipt(t *testing.T) {
	ctx := context.Background()
	members := store.NewMemoryMemberStore()
	items := store.NewMemoryItemStore()

	m, err := members.CreateMember(ctx, &member.Member{Email: "alice@example.com", Name: "Alice", Role: "customer"})
	require.NoError(t, err)
	espresso, err := items.CreateItem(ctx, &item.Item{Name: "Espresso", Price: 500})
	require.NoError(t, err)

	mailer := &recordingMailer{}
	h := NewHandler(mailer, members, items)

	payload := tradeCreatedPayload(t, trade.TradeCreated{
		TradeUUID: "uuid-1",
		MemberID:  m.ID,
		Items:     []trade.Item{{ItemID: espresso.ID, Quantity: 2, UnitPrice: 500}},
		Total:     1000,
		CreatedAt: time.Now(),
	})

	require.NoError(t, h.HandleMessage(ctx, []byte("uuid-1"), payload))
	assert.Equal(t, 1, mailer.sends)
	assert.Equal(t, "alice@example.com", mailer.to)
	assert.Equal(t, "uuid-1", mailer.tradeUUID)
	require.Len(t, mailer.items, 1)
	assert.Equal(t, "Espresso", mailer.items[0].Name)
}

func TestHandleMessage_UnknownItemFallsBackToID(t *testing.T) {
	ctx := context.Background()
	members := store.NewMemoryMemberStore()
	items := store.NewMemoryItemStore()

	m, err := members.CreateMember(ctx, &member.Member{Email: "alice@example.com", Name: "Alice", Role: "customer"})
	require.NoError(t, err)

	mailer := &recordingMailer{}
	h := NewHandler(mailer, members, items)

	payload := tradeCreatedPayload(t, trade.TradeCreated{
		TradeUUID: "uuid-2",
		MemberID:  m.ID,
		Items:     []trade.Item{{ItemID: 42, Quantity: 1, UnitPrice: 500}},
		Total:     500,
	})

	require.NoError(t, h.HandleMessage(ctx, []byte("uuid-2"), payload))
	require.Len(t, mailer.items, 1)
	assert.Equal(t, "item 42", mailer.items[0].Name)
}

func TestHandleMessage_UnknownMemberSkipsMail(t *testing.T) {
	mailer := &recordingMailer{}
	h := NewHandler(mailer, store.NewMemoryMemberStore(), store.NewMemoryItemStore())

	payload := tradeCreatedPayload(t, trade.TradeCreated{
		TradeUUID: "uuid-3",
		MemberID:  99,
	})

	// Not retryable; the handler logs and moves on.
	require.NoError(t, h.HandleMessage(context.Background(), []byte("uuid-3"), payload))
	assert.Zero(t, mailer.sends)
}

func TestHandleMessage_IgnoresOtherEventTypes(t *testing.T) {
	mailer := &recordingMailer{}
	h := NewHandler(mailer, store.NewMemoryMemberStore(), store.NewMemoryItemStore())

	env, err := trade.NewEnvelope("SomethingElse", map[string]string{"k": "v"})
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)

	require.NoError(t, h.HandleMessage(context.Background(), nil, data))
	assert.Zero(t, mailer.sends)
}

func TestHandleMessage_MalformedPayload(t *testing.T) {
	mailer := &recordingMailer{}
	h := NewHandler(mailer, store.NewMemoryMemberStore(), store.NewMemoryItemStore())

	assert.Error(t, h.HandleMessage(context.Background(), nil, []byte("not json")))
}

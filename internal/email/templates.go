package email

import (
	"fmt"
	"strings"
)

// ReceiptItem is one line of a trade receipt.
type ReceiptItem struct {
	Name      string
	Quantity  int
	UnitPrice int64
}

// BuildTradeReceiptBody renders the plain-text receipt.
func BuildTradeReceiptBody(name, tradeUUID string, total int64, items []ReceiptItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	b.WriteString("Thanks for your order. Here is your receipt.\n\n")
	fmt.Fprintf(&b, "Order reference: %s\n\n", tradeUUID)

	for _, it := range items {
		fmt.Fprintf(&b, "  %-30s x%-3d %10s\n",
			it.Name, it.Quantity, FormatPrice(it.UnitPrice*int64(it.Quantity)))
	}

	b.WriteString(strings.Repeat("-", 50) + "\n")
	fmt.Fprintf(&b, "  %-34s %10s\n\n", "Total", FormatPrice(total))
	b.WriteString("This is an automated message; replies are not monitored.\n")

	return b.String()
}

// FormatPrice renders a price in the smallest currency unit with
// thousands separators.
func FormatPrice(n int64) string {
	str := fmt.Sprintf("%d", n)
	negative := strings.HasPrefix(str, "-")
	if negative {
		str = str[1:]
	}

	var parts []string
	for len(str) > 3 {
		parts = append([]string{str[len(str)-3:]}, parts...)
		str = str[:len(str)-3]
	}
	parts = append([]string{str}, parts...)

	out := strings.Join(parts, ",")
	if negative {
		out = "-" + out
	}
	return out
}

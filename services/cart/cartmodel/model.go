package cartmodel

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	UID          string
	CreatedAt    time.Time
	LastModified *time.Time
	Items        []CartItem
}

type CartItem struct {
	UID         string
	Description string
	Price       decimal.Decimal
}

func (c Cart) Timestamp() string {
	return c.CreatedAt.Format("2006-01-02 15:04:05")
}

// Total is the exact sum of the item prices; rounding is up to the caller.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price)
	}
	return total
}

func (c Cart) GetItemSummary() string {
	lines := []string{}
	for _, item := range c.Items {
		lines = append(lines, fmt.Sprintf("%s (%s)", item.Description, item.Price.StringFixed(2)))
	}

	return strings.Join(lines, ", ")
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

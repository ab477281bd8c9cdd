package calculation

import (
	"time"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newCard(id string, limit, balance string, statementDay, dueDay int) domain.Card {
	return domain.Card{
		ID:           id,
		Name:         "Card " + id,
		CreditLimit:  dec(limit),
		Balance:      dec(balance),
		StatementDay: statementDay,
		DueDay:       dueDay,
	}
}

func withAPR(c domain.Card, apr string) domain.Card {
	v := dec(apr)
	c.APR = &v
	return c
}

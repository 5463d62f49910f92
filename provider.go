package returns

import (
	"context"

	"github.com/etnz/returns/date"
)

// PriceSource provides daily closing prices for a ticker.
type PriceSource interface {
	DailyCloses(ctx context.Context, ticker string, from, to date.Date) ([]DailyClose, error)
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
	"github.com/etnz/returns/ingest"
)

// AddTransactions appends txs read from source. Rows already imported from
// the same source (same sequence number) are skipped, so re-importing a file
// is harmless. It returns the number of rows inserted.
func (s *Store) AddTransactions(ctx context.Context, source string, txs []returns.Transaction) (int, error) {
	inserted := 0
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR IGNORE INTO transactions (source, seq, activity_date, instrument, event_type, trans_code, quantity, amount)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, t := range txs {
			res, err := stmt.ExecContext(ctx, source, t.Seq, t.Date.String(), t.Instrument, t.Type.String(), t.Code, t.Quantity.String(), t.Amount.String())
			if err != nil {
				return fmt.Errorf("inserting transaction #%d: %w", t.Seq, err)
			}
			n, _ := res.RowsAffected()
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Info().Str("source", source).Int("inserted", inserted).Int("skipped", len(txs)-inserted).Msg("transactions stored")
	return inserted, nil
}

// Transactions returns every stored transaction in insertion order.
// Seq is the row id, so that source order is kept across imports.
func (s *Store) Transactions(ctx context.Context) ([]returns.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, activity_date, instrument, event_type, trans_code, quantity, amount
		FROM transactions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []returns.Transaction
	for rows.Next() {
		var (
			t         returns.Transaction
			on, event string
		)
		if err := rows.Scan(&t.Seq, &on, &t.Instrument, &event, &t.Code, &t.Quantity, &t.Amount); err != nil {
			return nil, err
		}
		if t.Date, err = date.Parse(on); err != nil {
			return nil, err
		}
		t.Type = returns.ParseEventType(event)
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// Instrument describes the activity of an instrument.
type Instrument struct {
	Name         string    `json:"instrument"`
	Transactions int       `json:"transactions"`
	First        date.Date `json:"first"`
	Last         date.Date `json:"last"`
}

// Instruments returns the instruments with at least one transaction, by name.
func (s *Store) Instruments(ctx context.Context) ([]Instrument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT instrument, COUNT(*), MIN(activity_date), MAX(activity_date)
		FROM transactions GROUP BY instrument ORDER BY instrument`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instruments []Instrument
	for rows.Next() {
		var (
			i           Instrument
			first, last string
		)
		if err := rows.Scan(&i.Name, &i.Transactions, &first, &last); err != nil {
			return nil, err
		}
		if i.First, err = date.Parse(first); err != nil {
			return nil, err
		}
		if i.Last, err = date.Parse(last); err != nil {
			return nil, err
		}
		instruments = append(instruments, i)
	}
	return instruments, rows.Err()
}

// UpsertCloses stores daily closes, replacing any previous value for the same day.
func (s *Store) UpsertCloses(ctx context.Context, closes []returns.DailyClose) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO market_data (instrument, price_date, close_price) VALUES (?, ?, ?)
			ON CONFLICT (instrument, price_date) DO UPDATE SET close_price = excluded.close_price`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, c := range closes {
			if _, err := stmt.ExecContext(ctx, c.Instrument, c.Date.String(), c.Close.String()); err != nil {
				return fmt.Errorf("storing %s close on %v: %w", c.Instrument, c.Date, err)
			}
		}
		return nil
	})
}

// DailyCloses returns every stored close, by instrument then date.
func (s *Store) DailyCloses(ctx context.Context) ([]returns.DailyClose, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT instrument, price_date, close_price FROM market_data ORDER BY instrument, price_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closes []returns.DailyClose
	for rows.Next() {
		var (
			c  returns.DailyClose
			on string
		)
		if err := rows.Scan(&c.Instrument, &on, &c.Close); err != nil {
			return nil, err
		}
		if c.Date, err = date.Parse(on); err != nil {
			return nil, err
		}
		closes = append(closes, c)
	}
	return closes, rows.Err()
}

// LatestClose returns the date of the most recent close of instrument.
func (s *Store) LatestClose(ctx context.Context, instrument string) (date.Date, bool, error) {
	var on sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT MAX(price_date) FROM market_data WHERE instrument = ?`, instrument).Scan(&on)
	if err != nil || !on.Valid {
		return date.Date{}, false, err
	}
	d, err := date.Parse(on.String)
	return d, err == nil, err
}

// Inputs loads the engine inputs: transactions of tradable instruments and
// their monthly prices.
func (s *Store) Inputs(ctx context.Context) ([]returns.Transaction, []returns.PricePoint, error) {
	all, err := s.Transactions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading transactions: %w", err)
	}
	txs := all[:0]
	for _, tx := range all {
		if ingest.Tradable(tx.Instrument) {
			txs = append(txs, tx)
		}
	}
	closes, err := s.DailyCloses(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading prices: %w", err)
	}
	return txs, returns.MonthlyPrices(closes), nil
}

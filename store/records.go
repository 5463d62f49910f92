package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Run describes a saved report.
type Run struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Instruments int       `json:"instruments"`
	Records     int       `json:"records"`
}

// SaveReport records a run and upserts the monthly record of every
// instrument, keyed by period end date and instrument. Records saved by a
// previous run for the same month are replaced.
func (s *Store) SaveReport(ctx context.Context, report *returns.Report) (Run, error) {
	run := Run{ID: uuid.NewString(), CreatedAt: time.Now().UTC(), Instruments: len(report.Instruments)}
	for _, ir := range report.Instruments {
		run.Records += len(ir.Records)
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO runs (id, created_at, instruments, records) VALUES (?, ?, ?, ?)`,
			run.ID, run.CreatedAt.Format(time.RFC3339), run.Instruments, run.Records); err != nil {
			return fmt.Errorf("inserting run: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO asset_value (as_of_date, instrument, period_start, shares_bom, shares_eom, price_bom, price_eom,
				nav_bom, nav_eom, net_cash_flow, wcf, average_capital, pnl, realized_pnl, unrealized_pnl,
				md_return, linked_return, ltd_return, run_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (as_of_date, instrument) DO UPDATE SET
				period_start = excluded.period_start,
				shares_bom = excluded.shares_bom,
				shares_eom = excluded.shares_eom,
				price_bom = excluded.price_bom,
				price_eom = excluded.price_eom,
				nav_bom = excluded.nav_bom,
				nav_eom = excluded.nav_eom,
				net_cash_flow = excluded.net_cash_flow,
				wcf = excluded.wcf,
				average_capital = excluded.average_capital,
				pnl = excluded.pnl,
				realized_pnl = excluded.realized_pnl,
				unrealized_pnl = excluded.unrealized_pnl,
				md_return = excluded.md_return,
				linked_return = excluded.linked_return,
				ltd_return = excluded.ltd_return,
				run_id = excluded.run_id`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, ir := range report.Instruments {
			for _, r := range ir.Records {
				_, err := stmt.ExecContext(ctx, r.End.String(), r.Instrument, r.Start.String(),
					r.SharesBOM.String(), r.SharesEOM.String(), r.PriceBOM.String(), r.PriceEOM.String(),
					r.NavBOM.String(), r.NavEOM.String(), r.NetCashFlow.String(), r.WCF.String(),
					r.AverageCapital.String(), r.PnL.String(), r.RealizedPnL.String(), r.UnrealizedPnL.String(),
					returnValue(r.Return), returnValue(r.LinkedReturn), returnValue(r.LTDReturn), run.ID)
				if err != nil {
					return fmt.Errorf("storing %s %s: %w", r.Instrument, r.Period().Identifier(), err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return Run{}, err
	}
	s.log.Info().Str("run", run.ID).Int("records", run.Records).Msg("report saved")
	return run, nil
}

// AssetValues returns the saved records of instrument, by period.
func (s *Store) AssetValues(ctx context.Context, instrument string) ([]returns.PeriodRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT as_of_date, period_start, shares_bom, shares_eom, price_bom, price_eom,
			nav_bom, nav_eom, net_cash_flow, wcf, average_capital, pnl, realized_pnl, unrealized_pnl,
			md_return, linked_return, ltd_return
		FROM asset_value WHERE instrument = ? ORDER BY as_of_date`, instrument)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []returns.PeriodRecord
	for rows.Next() {
		r := returns.PeriodRecord{Instrument: instrument}
		var (
			end, start      string
			md, linked, ltd sql.NullString
		)
		if err := rows.Scan(&end, &start, &r.SharesBOM, &r.SharesEOM, &r.PriceBOM, &r.PriceEOM,
			&r.NavBOM, &r.NavEOM, &r.NetCashFlow, &r.WCF, &r.AverageCapital, &r.PnL, &r.RealizedPnL, &r.UnrealizedPnL,
			&md, &linked, &ltd); err != nil {
			return nil, err
		}
		if r.End, err = date.Parse(end); err != nil {
			return nil, err
		}
		if r.Start, err = date.Parse(start); err != nil {
			return nil, err
		}
		r.DayCount = r.Period().Days()
		if r.Return, err = scanReturn(md); err != nil {
			return nil, err
		}
		if r.LinkedReturn, err = scanReturn(linked); err != nil {
			return nil, err
		}
		if r.LTDReturn, err = scanReturn(ltd); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Runs returns the saved runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, instruments, records FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r  Run
			at string
		)
		if err := rows.Scan(&r.ID, &at, &r.Instruments, &r.Records); err != nil {
			return nil, err
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339, at); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// returnValue maps an undefined return to NULL.
func returnValue(r returns.Return) any {
	if !r.Valid() {
		return nil
	}
	return r.Decimal().String()
}

func scanReturn(s sql.NullString) (returns.Return, error) {
	if !s.Valid {
		return returns.Undefined, nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return returns.Undefined, err
	}
	return returns.R(d), nil
}

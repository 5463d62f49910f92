// Package returns computes time-weighted performance of an investment
// portfolio with the Modified Dietz method.
//
// From a stream of signed, dated cash-flow transactions and monthly prices it
// produces, for every instrument and calendar month:
//   - the share position at the beginning and end of the month,
//   - the net asset value bridge (nav_bom, flows, nav_eom),
//   - the weighted cash flow and the Modified Dietz return,
//   - the geometrically linked return, since inception and since the
//     position was last opened.
//
// Monthly returns are then compounded over MTD, QTD, YTD, TTM, T2Y and LTD
// horizons per instrument and for the whole portfolio.
//
// The package performs no I/O. Ingestion, market data, persistence and
// presentation live in the ingest, eodhd, yahoo, store, renderer and server
// packages, and the `mdr` command wires them together.
package returns

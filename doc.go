// Package sentinel implements the TradeSentinel analytics core: risk and
// performance metrics over return series, an equal-weighted backtest
// simulator, and a transaction-based portfolio valuation engine.
//
// The core is synchronous and free of I/O: it transforms in-memory price
// tables and transaction ledgers into valuation histories and metric
// reports. Price retrieval and portfolio persistence are collaborators
// behind small interfaces ([Store]) or plain inputs ([PriceTable]).
package sentinel

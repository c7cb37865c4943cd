// Package journal keeps the trader's log of individual trades: what was
// traded, how it went, how it felt, and what was learned.
//
// TradeStore is the single owner of the list. Callers read copies and mutate
// through its methods; every mutation is written through to a kv slot.
package journal

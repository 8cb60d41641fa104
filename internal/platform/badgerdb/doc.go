// Package badgerdb implements the store interfaces on an embedded Badger
// key-value database. Entities are stored as JSON under zero-padded keys,
// and ids come from per-entity counters updated in the writing transaction.
package badgerdb

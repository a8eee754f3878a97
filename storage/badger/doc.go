// Package badger implements the storage.Backend contract on BadgerDB, the
// primary document store. Knowledge documents carry a secondary entity index;
// analytics events carry date and user indices with BigEndian timestamp keys
// so prefix iteration yields chronological order.
package badger

// Package jsonfile implements the storage.Backend contract on flat JSON
// array files, one per record kind. It is the fallback used when the
// embedded database cannot be opened, trading performance for a store that
// needs nothing but a writable directory.
package jsonfile

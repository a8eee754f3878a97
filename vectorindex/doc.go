// Package vectorindex provides semantic nearest-neighbor search over text
// chunks, with two interchangeable backends: a remote Qdrant instance and an
// in-process brute-force index used when the remote one is unreachable.
package vectorindex

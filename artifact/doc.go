// Package artifact persists pipeline outputs using blob-plus-row semantics.
//
// Every artifact lives twice: its document in the blob store, and a metadata
// row pointing at the blob path. The store's write operations are idempotent
// so pipeline re-runs are safe: duplicate chunk writes are absorbed via
// content-derived chunk IDs, transcript re-uploads are absorbed by path, and
// a recording's summary row is an upsert that always points at the latest
// unified summary.
package artifact

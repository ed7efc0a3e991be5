// Package manifest defines the catalog wire model (catalogs, extensions,
// releases) and fetches catalog manifests over HTTP with JSON Schema
// validation against the embedded catalog schema.
package manifest

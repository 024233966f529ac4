// Package catalog loads ordered threat pattern catalogs from JSON or YAML.
// A pattern's position in the catalog is its identity: engines report
// matches by index and map them back to the catalog entry. Pattern syntax
// is not validated here; that happens when an engine is built.
package catalog

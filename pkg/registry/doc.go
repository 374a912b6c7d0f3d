// Package registry models product records from the Z-Wave Alliance product
// registry and defines the Fetcher contract used to retrieve them. Records are
// decoded leniently: scalars keep their raw JSON payload behind Value, and
// lists that are missing or malformed decode as empty rather than failing the
// whole record.
package registry

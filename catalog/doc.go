// Package catalog turns catalog API calls into result streams.
//
// Every call returns a channel that already holds resource.Loading and
// later receives exactly one terminal Success or Error before closing.
// Failures of any kind, panics included, surface as Error values.
package catalog

// Package models holds the records persisted by the storage backends and the
// derived types served by the API. Field tags cover gorm (SQL backends), bson
// (document store) and json (wire format).
package models

// Package dto defines request and response shapes for the v1 API.
package dto

// IDResponse carries the id of a created entity.
type IDResponse struct {
	ID int64 `json:"id"`
}

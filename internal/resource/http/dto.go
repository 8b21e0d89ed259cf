package http

import (
	"time"

	"github.com/nekogravitycat/flight-schedule-grid/internal/pkg/request"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
)

// ListResourcesRequest defines query parameters for listing aircraft and instructors.
type ListResourcesRequest struct {
	request.ListParams
	Kind   string `form:"kind" binding:"omitempty,oneof=aircraft instructor"`
	Status string `form:"status" binding:"omitempty,oneof=available maintenance inactive"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=name created_at status"`
}

// GetResourceRequest addresses one resource; ids are only unique within a kind.
type GetResourceRequest struct {
	Kind string `uri:"kind" binding:"required,oneof=aircraft instructor"`
	ID   string `uri:"id" binding:"required,uuid"`
}

type ResourceResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResponse(r *resource.Resource) ResourceResponse {
	return ResourceResponse{
		ID:        r.ID,
		Kind:      string(r.Kind),
		Name:      r.Name,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

// ResourceTag is the compact form embedded in other responses.
type ResourceTag struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}

func NewTag(r *resource.Resource) ResourceTag {
	return ResourceTag{ID: r.ID, Kind: string(r.Kind), Name: r.Name}
}

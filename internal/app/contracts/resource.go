package contracts

import (
	"context"
	"net/url"
	"strokewatch-service/internal/pkg/fhir_dto"
)

// SearchQuery is the store-level shape of a translated FHIR search. Filter is
// an open map so the contract stays free of driver types.
type SearchQuery struct {
	Filter         map[string]interface{}
	SortField      string
	SortDescending bool
	Limit          int64
	Offset         int64
}

type ResourceRepository interface {
	Insert(ctx context.Context, resourceType string, doc map[string]interface{}) error
	// FindByID returns (nil, nil) when no document matches.
	FindByID(ctx context.Context, resourceType, resourceID string) (map[string]interface{}, error)
	Search(ctx context.Context, resourceType string, query *SearchQuery) ([]map[string]interface{}, int64, error)
	Upsert(ctx context.Context, resourceType, resourceID string, doc map[string]interface{}) error
	DeleteByID(ctx context.Context, resourceType, resourceID string) (int64, error)
}

type ResourceUsecase interface {
	Create(ctx context.Context, resourceType string, body []byte) (map[string]interface{}, error)
	FindByID(ctx context.Context, resourceType, resourceID string) (map[string]interface{}, error)
	Search(ctx context.Context, resourceType string, params url.Values) (*fhir_dto.Bundle, error)
	// Update replaces the resource at the path id, creating it when absent.
	// The second return reports whether a new resource was created.
	Update(ctx context.Context, resourceType, resourceID string, body []byte) (map[string]interface{}, bool, error)
	DeleteByID(ctx context.Context, resourceType, resourceID string) error
}

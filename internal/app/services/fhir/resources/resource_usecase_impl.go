package resources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/exceptions"
	"strokewatch-service/internal/pkg/fhir_dto"
	"strokewatch-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type resourceUsecase struct {
	ResourceRepository contracts.ResourceRepository
	Log                *zap.Logger
}

func NewResourceUsecase(resourceRepository contracts.ResourceRepository, log *zap.Logger) contracts.ResourceUsecase {
	return &resourceUsecase{
		ResourceRepository: resourceRepository,
		Log:                log,
	}
}

func (u *resourceUsecase) Create(ctx context.Context, resourceType string, body []byte) (map[string]interface{}, error) {
	descriptor := LookupDescriptor(resourceType)
	if descriptor == nil {
		return nil, exceptions.ErrResourceTypeNotSupported(resourceType)
	}

	doc := make(map[string]interface{})
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	if issues := descriptor.Validate(doc); len(issues) > 0 {
		return nil, exceptions.ErrResourceValidation(issues)
	}

	resourceID, _ := doc["id"].(string)
	if resourceID != "" {
		existing, err := u.ResourceRepository.FindByID(ctx, resourceType, resourceID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, exceptions.ErrResourceAlreadyExists(resourceType, resourceID)
		}
	} else {
		resourceID = uuid.NewString()
	}

	stampResource(doc, resourceType, resourceID)

	if err := u.ResourceRepository.Insert(ctx, resourceType, doc); err != nil {
		return nil, err
	}

	u.Log.Info("resource created",
		zap.String(constvars.LoggingResourceKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
	)
	return doc, nil
}

func (u *resourceUsecase) FindByID(ctx context.Context, resourceType, resourceID string) (map[string]interface{}, error) {
	if LookupDescriptor(resourceType) == nil {
		return nil, exceptions.ErrResourceTypeNotSupported(resourceType)
	}

	doc, err := u.ResourceRepository.FindByID(ctx, resourceType, resourceID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, exceptions.ErrResourceNotFound(resourceType, resourceID)
	}
	return doc, nil
}

func (u *resourceUsecase) Search(ctx context.Context, resourceType string, params url.Values) (*fhir_dto.Bundle, error) {
	descriptor := LookupDescriptor(resourceType)
	if descriptor == nil {
		return nil, exceptions.ErrResourceTypeNotSupported(resourceType)
	}

	query := buildSearchQuery(descriptor, params)
	docs, total, err := u.ResourceRepository.Search(ctx, resourceType, query)
	if err != nil {
		return nil, err
	}

	entries := make([]fhir_dto.BundleEntry, 0, len(docs))
	for _, doc := range docs {
		resourceID, _ := doc["id"].(string)
		entries = append(entries, fhir_dto.BundleEntry{
			FullUrl:  fmt.Sprintf("%s/%s", resourceType, resourceID),
			Resource: doc,
		})
	}

	return &fhir_dto.Bundle{
		ResourceType: constvars.ResourceBundle,
		Type:         constvars.FhirBundleTypeSearchset,
		Total:        total,
		Entry:        entries,
	}, nil
}

func (u *resourceUsecase) Update(ctx context.Context, resourceType, resourceID string, body []byte) (map[string]interface{}, bool, error) {
	descriptor := LookupDescriptor(resourceType)
	if descriptor == nil {
		return nil, false, exceptions.ErrResourceTypeNotSupported(resourceType)
	}

	doc := make(map[string]interface{})
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, false, exceptions.ErrCannotParseJSON(err)
	}

	if issues := descriptor.Validate(doc); len(issues) > 0 {
		return nil, false, exceptions.ErrResourceValidation(issues)
	}

	// The path id always wins over whatever the body carries.
	stampResource(doc, resourceType, resourceID)

	existing, err := u.ResourceRepository.FindByID(ctx, resourceType, resourceID)
	if err != nil {
		return nil, false, err
	}

	if err := u.ResourceRepository.Upsert(ctx, resourceType, resourceID, doc); err != nil {
		return nil, false, err
	}

	created := existing == nil
	u.Log.Info("resource updated",
		zap.String(constvars.LoggingResourceKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
		zap.Bool("created", created),
	)
	return doc, created, nil
}

func (u *resourceUsecase) DeleteByID(ctx context.Context, resourceType, resourceID string) error {
	if LookupDescriptor(resourceType) == nil {
		return exceptions.ErrResourceTypeNotSupported(resourceType)
	}

	deleted, err := u.ResourceRepository.DeleteByID(ctx, resourceType, resourceID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return exceptions.ErrNothingToDelete(resourceType, resourceID)
	}

	u.Log.Info("resource deleted",
		zap.String(constvars.LoggingResourceKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
	)
	return nil
}

// stampResource enforces the server-owned fields on a document about to be
// stored.
func stampResource(doc map[string]interface{}, resourceType, resourceID string) {
	doc["resourceType"] = resourceType
	doc["id"] = resourceID

	meta, _ := doc["meta"].(map[string]interface{})
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["lastUpdated"] = utils.FhirInstant(time.Now())
	doc["meta"] = meta
}

// buildSearchQuery translates query params into the store-level query:
// descriptor filter translation plus shared paging and sorting rules.
func buildSearchQuery(descriptor *Descriptor, params url.Values) *contracts.SearchQuery {
	query := &contracts.SearchQuery{
		Filter: descriptor.Translate(params),
		Limit:  constvars.DefaultSearchPageSize,
		Offset: 0,
	}

	if raw := params.Get(constvars.SearchParamCount); raw != "" {
		if count, err := strconv.ParseInt(raw, 10, 64); err == nil && count > 0 {
			if count > constvars.MaxSearchPageSize {
				count = constvars.MaxSearchPageSize
			}
			query.Limit = count
		}
	}
	if raw := params.Get(constvars.SearchParamOffset); raw != "" {
		if offset, err := strconv.ParseInt(raw, 10, 64); err == nil && offset > 0 {
			query.Offset = offset
		}
	}
	if descriptor.DateSortField != "" && params.Get(constvars.SearchParamSort) == constvars.SearchSortValueDate {
		query.SortField = descriptor.DateSortField
		query.SortDescending = true
	}
	return query
}

package resources

import (
	"context"
	"net/url"
	"testing"

	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeResourceRepository keeps documents in memory keyed by type and id. Search
// only honors exact-match filters, which is all the usecase tests need.
type fakeResourceRepository struct {
	docs map[string]map[string]map[string]interface{}
}

func newFakeResourceRepository() *fakeResourceRepository {
	return &fakeResourceRepository{docs: make(map[string]map[string]map[string]interface{})}
}

func (f *fakeResourceRepository) bucket(resourceType string) map[string]map[string]interface{} {
	if f.docs[resourceType] == nil {
		f.docs[resourceType] = make(map[string]map[string]interface{})
	}
	return f.docs[resourceType]
}

func (f *fakeResourceRepository) Insert(ctx context.Context, resourceType string, doc map[string]interface{}) error {
	id, _ := doc["id"].(string)
	f.bucket(resourceType)[id] = doc
	return nil
}

func (f *fakeResourceRepository) FindByID(ctx context.Context, resourceType, resourceID string) (map[string]interface{}, error) {
	doc, ok := f.bucket(resourceType)[resourceID]
	if !ok {
		return nil, nil
	}
	return doc, nil
}

func (f *fakeResourceRepository) Search(ctx context.Context, resourceType string, query *contracts.SearchQuery) ([]map[string]interface{}, int64, error) {
	var matched []map[string]interface{}
	for _, doc := range f.bucket(resourceType) {
		matches := true
		for field, want := range query.Filter {
			if doc[field] != want {
				matches = false
				break
			}
		}
		if matches {
			matched = append(matched, doc)
		}
	}
	total := int64(len(matched))
	if query.Offset < total {
		matched = matched[query.Offset:]
	} else {
		matched = nil
	}
	if int64(len(matched)) > query.Limit {
		matched = matched[:query.Limit]
	}
	return matched, total, nil
}

func (f *fakeResourceRepository) Upsert(ctx context.Context, resourceType, resourceID string, doc map[string]interface{}) error {
	f.bucket(resourceType)[resourceID] = doc
	return nil
}

func (f *fakeResourceRepository) DeleteByID(ctx context.Context, resourceType, resourceID string) (int64, error) {
	if _, ok := f.bucket(resourceType)[resourceID]; !ok {
		return 0, nil
	}
	delete(f.bucket(resourceType), resourceID)
	return 1, nil
}

func newTestUsecase() (*fakeResourceRepository, contracts.ResourceUsecase) {
	repo := newFakeResourceRepository()
	return repo, NewResourceUsecase(repo, zap.NewNop())
}

func TestResourceUsecaseCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("honors the caller id", func(t *testing.T) {
		_, usecase := newTestUsecase()

		doc, err := usecase.Create(ctx, constvars.ResourcePatient, []byte(`{"resourceType":"Patient","id":"p-1"}`))

		assert.NoError(t, err)
		assert.Equal(t, "p-1", doc["id"])
	})

	t.Run("generates an id when absent", func(t *testing.T) {
		_, usecase := newTestUsecase()

		doc, err := usecase.Create(ctx, constvars.ResourcePatient, []byte(`{"resourceType":"Patient"}`))

		assert.NoError(t, err)
		assert.NotEmpty(t, doc["id"])
	})

	t.Run("stamps resourceType and meta.lastUpdated", func(t *testing.T) {
		_, usecase := newTestUsecase()

		doc, err := usecase.Create(ctx, constvars.ResourcePatient, []byte(`{"resourceType":"Patient"}`))

		assert.NoError(t, err)
		assert.Equal(t, constvars.ResourcePatient, doc["resourceType"])
		meta := doc["meta"].(map[string]interface{})
		assert.NotEmpty(t, meta["lastUpdated"])
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		_, usecase := newTestUsecase()

		_, err := usecase.Create(ctx, constvars.ResourcePatient, []byte(`{"resourceType":"Patient","id":"p-1"}`))
		assert.NoError(t, err)

		_, err = usecase.Create(ctx, constvars.ResourcePatient, []byte(`{"resourceType":"Patient","id":"p-1"}`))
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		_, usecase := newTestUsecase()

		_, err := usecase.Create(ctx, constvars.ResourcePatient, []byte(`{not json`))
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("validation failures are returned with one issue per rule", func(t *testing.T) {
		_, usecase := newTestUsecase()

		_, err := usecase.Create(ctx, constvars.ResourceObservation, []byte(`{"resourceType":"Observation"}`))
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Len(t, customErr.Issues, 2)
	})

	t.Run("unknown resource type is not supported", func(t *testing.T) {
		_, usecase := newTestUsecase()

		_, err := usecase.Create(ctx, "Medication", []byte(`{}`))
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.FhirIssueCodeNotSupported, customErr.IssueCode)
	})
}

func TestResourceUsecaseFindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("absent resource is not-found", func(t *testing.T) {
		_, usecase := newTestUsecase()

		_, err := usecase.FindByID(ctx, constvars.ResourcePatient, "missing")
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
		assert.Equal(t, constvars.FhirIssueCodeNotFound, customErr.IssueCode)
	})

	t.Run("stored resource is returned", func(t *testing.T) {
		_, usecase := newTestUsecase()
		_, err := usecase.Create(ctx, constvars.ResourcePatient, []byte(`{"resourceType":"Patient","id":"p-1"}`))
		assert.NoError(t, err)

		doc, err := usecase.FindByID(ctx, constvars.ResourcePatient, "p-1")
		assert.NoError(t, err)
		assert.Equal(t, "p-1", doc["id"])
	})
}

func TestResourceUsecaseSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("empty result is still a searchset bundle", func(t *testing.T) {
		_, usecase := newTestUsecase()

		bundle, err := usecase.Search(ctx, constvars.ResourcePatient, nil)

		assert.NoError(t, err)
		assert.Equal(t, constvars.ResourceBundle, bundle.ResourceType)
		assert.Equal(t, constvars.FhirBundleTypeSearchset, bundle.Type)
		assert.Equal(t, int64(0), bundle.Total)
		assert.Empty(t, bundle.Entry)
	})

	t.Run("entries carry fullUrl and total counts all matches", func(t *testing.T) {
		_, usecase := newTestUsecase()
		_, err := usecase.Create(ctx, constvars.ResourcePatient, []byte(`{"resourceType":"Patient","id":"p-1","gender":"female"}`))
		assert.NoError(t, err)
		_, err = usecase.Create(ctx, constvars.ResourcePatient, []byte(`{"resourceType":"Patient","id":"p-2","gender":"male"}`))
		assert.NoError(t, err)

		params := url.Values{}
		params.Set("gender", "female")
		bundle, err := usecase.Search(ctx, constvars.ResourcePatient, params)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), bundle.Total)
		assert.Equal(t, "Patient/p-1", bundle.Entry[0].FullUrl)
	})
}

func TestResourceUsecaseUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("upsert on a new id reports created", func(t *testing.T) {
		_, usecase := newTestUsecase()

		doc, created, err := usecase.Update(ctx, constvars.ResourcePatient, "p-1", []byte(`{"resourceType":"Patient"}`))

		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "p-1", doc["id"])
	})

	t.Run("replacing an existing resource is not a create", func(t *testing.T) {
		_, usecase := newTestUsecase()
		_, _, err := usecase.Update(ctx, constvars.ResourcePatient, "p-1", []byte(`{"resourceType":"Patient"}`))
		assert.NoError(t, err)

		_, created, err := usecase.Update(ctx, constvars.ResourcePatient, "p-1", []byte(`{"resourceType":"Patient","gender":"male"}`))
		assert.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("the path id wins over the body id", func(t *testing.T) {
		_, usecase := newTestUsecase()

		doc, _, err := usecase.Update(ctx, constvars.ResourcePatient, "p-1", []byte(`{"resourceType":"Patient","id":"p-other"}`))

		assert.NoError(t, err)
		assert.Equal(t, "p-1", doc["id"])
	})

	t.Run("body resourceType must match the endpoint", func(t *testing.T) {
		_, usecase := newTestUsecase()

		_, _, err := usecase.Update(ctx, constvars.ResourcePatient, "p-1", []byte(`{"resourceType":"Observation"}`))
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})
}

func TestResourceUsecaseDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting nothing is not-found", func(t *testing.T) {
		_, usecase := newTestUsecase()

		err := usecase.DeleteByID(ctx, constvars.ResourcePatient, "missing")
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("deleted resources stop resolving", func(t *testing.T) {
		_, usecase := newTestUsecase()
		_, err := usecase.Create(ctx, constvars.ResourcePatient, []byte(`{"resourceType":"Patient","id":"p-1"}`))
		assert.NoError(t, err)

		assert.NoError(t, usecase.DeleteByID(ctx, constvars.ResourcePatient, "p-1"))

		_, err = usecase.FindByID(ctx, constvars.ResourcePatient, "p-1")
		assert.Error(t, err)
	})
}

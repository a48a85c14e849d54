package imports

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeResourceRepository struct {
	inserted     map[string][]map[string]interface{}
	failPatients bool
}

func newFakeResourceRepository() *fakeResourceRepository {
	return &fakeResourceRepository{inserted: make(map[string][]map[string]interface{})}
}

func (f *fakeResourceRepository) Insert(ctx context.Context, resourceType string, doc map[string]interface{}) error {
	if f.failPatients && resourceType == constvars.ResourcePatient {
		return errors.New("insert failed")
	}
	f.inserted[resourceType] = append(f.inserted[resourceType], doc)
	return nil
}

func (f *fakeResourceRepository) FindByID(ctx context.Context, resourceType, resourceID string) (map[string]interface{}, error) {
	return nil, nil
}

func (f *fakeResourceRepository) Search(ctx context.Context, resourceType string, query *contracts.SearchQuery) ([]map[string]interface{}, int64, error) {
	return nil, 0, nil
}

func (f *fakeResourceRepository) Upsert(ctx context.Context, resourceType, resourceID string, doc map[string]interface{}) error {
	return nil
}

func (f *fakeResourceRepository) DeleteByID(ctx context.Context, resourceType, resourceID string) (int64, error) {
	return 0, nil
}

type fakeStorage struct {
	objects []string
}

func (f *fakeStorage) UploadFile(ctx context.Context, file io.Reader, objectName string, size int64, contentType string) (string, error) {
	f.objects = append(f.objects, objectName)
	return objectName, nil
}

type fakePublisher struct {
	events []string
}

func (f *fakePublisher) Publish(ctx context.Context, eventName string, payload interface{}) error {
	f.events = append(f.events, eventName)
	return nil
}

const csvHeader = "id,gender,age,hypertension,heart_disease,ever_married,work_type,Residence_type,avg_glucose_level,bmi,smoking_status,stroke\n"

func newTestImportUsecase(repo *fakeResourceRepository) (contracts.ImportUsecase, *fakeStorage, *fakePublisher) {
	storage := &fakeStorage{}
	publisher := &fakePublisher{}
	usecase := &importUsecase{
		ResourceRepository: repo,
		Storage:            storage,
		EventPublisher:     publisher,
		Log:                zap.NewNop(),
		now:                func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	return usecase, storage, publisher
}

func TestImportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("full row creates patient, conditions and observations", func(t *testing.T) {
		repo := newFakeResourceRepository()
		usecase, _, _ := newTestImportUsecase(repo)
		csvData := csvHeader + "9046,Male,67,0,1,Yes,Private,Urban,228.69,36.6,formerly smoked,1\n"

		response, err := usecase.ImportCSV(ctx, strings.NewReader(csvData), "stroke.csv")

		assert.NoError(t, err)
		assert.True(t, response.Success)
		assert.Equal(t, 1, response.Patients)
		assert.Equal(t, 2, response.Conditions) // heart disease + stroke
		assert.Equal(t, 3, response.Observations)
		assert.Empty(t, response.Errors)

		patient := repo.inserted[constvars.ResourcePatient][0]
		assert.Equal(t, "9046", patient["id"])
		assert.Equal(t, "male", patient["gender"])
		assert.Equal(t, "1958-01-01", patient["birthDate"])
	})

	t.Run("urban residence becomes an address with a city", func(t *testing.T) {
		repo := newFakeResourceRepository()
		usecase, _, _ := newTestImportUsecase(repo)
		csvData := csvHeader + "1,Female,50,0,0,No,Private,Urban,N/A,N/A,Unknown,0\n"

		_, err := usecase.ImportCSV(ctx, strings.NewReader(csvData), "stroke.csv")
		assert.NoError(t, err)

		patient := repo.inserted[constvars.ResourcePatient][0]
		address := patient["address"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "Urban", address["city"])
	})

	t.Run("rural residence keeps an address without a city", func(t *testing.T) {
		repo := newFakeResourceRepository()
		usecase, _, _ := newTestImportUsecase(repo)
		csvData := csvHeader + "1,Female,50,0,0,No,Private,Rural,N/A,N/A,Unknown,0\n"

		_, err := usecase.ImportCSV(ctx, strings.NewReader(csvData), "stroke.csv")
		assert.NoError(t, err)

		patient := repo.inserted[constvars.ResourcePatient][0]
		address := patient["address"].([]interface{})[0].(map[string]interface{})
		assert.Nil(t, address["city"])
	})

	t.Run("N/A numeric cells and Unknown smoking are skipped", func(t *testing.T) {
		repo := newFakeResourceRepository()
		usecase, _, _ := newTestImportUsecase(repo)
		csvData := csvHeader + "1,Female,50,0,0,No,Private,Rural,N/A,N/A,Unknown,0\n"

		response, err := usecase.ImportCSV(ctx, strings.NewReader(csvData), "stroke.csv")

		assert.NoError(t, err)
		assert.Equal(t, 0, response.Observations)
		assert.Equal(t, 0, response.Conditions)
	})

	t.Run("hypertension row creates the SNOMED condition", func(t *testing.T) {
		repo := newFakeResourceRepository()
		usecase, _, _ := newTestImportUsecase(repo)
		csvData := csvHeader + "1,Female,50,1,0,No,Private,Rural,N/A,N/A,Unknown,0\n"

		_, err := usecase.ImportCSV(ctx, strings.NewReader(csvData), "stroke.csv")
		assert.NoError(t, err)

		condition := repo.inserted[constvars.ResourceCondition][0]
		code := condition["code"].(map[string]interface{})
		coding := code["coding"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, constvars.CodeHypertensionSNOMED, coding["code"])
		assert.Equal(t, "Patient/1", condition["subject"].(map[string]interface{})["reference"])
	})

	t.Run("bad rows are recorded without stopping the import", func(t *testing.T) {
		repo := newFakeResourceRepository()
		repo.failPatients = true
		usecase, _, _ := newTestImportUsecase(repo)
		csvData := csvHeader + "1,Female,50,0,0,No,Private,Rural,N/A,N/A,Unknown,0\n"

		response, err := usecase.ImportCSV(ctx, strings.NewReader(csvData), "stroke.csv")

		assert.NoError(t, err)
		assert.Equal(t, 0, response.Patients)
		assert.Len(t, response.Errors, 1)
		assert.Contains(t, response.Errors[0], "row 2")
	})

	t.Run("archives the raw file and publishes completion", func(t *testing.T) {
		repo := newFakeResourceRepository()
		usecase, storage, publisher := newTestImportUsecase(repo)
		csvData := csvHeader + "1,Female,50,0,0,No,Private,Rural,N/A,N/A,Unknown,0\n"

		_, err := usecase.ImportCSV(ctx, strings.NewReader(csvData), "stroke.csv")

		assert.NoError(t, err)
		assert.Len(t, storage.objects, 1)
		assert.Contains(t, storage.objects[0], "stroke.csv")
		assert.Equal(t, []string{constvars.EventImportCompleted}, publisher.events)
	})

	t.Run("missing id gets a generated one", func(t *testing.T) {
		repo := newFakeResourceRepository()
		usecase, _, _ := newTestImportUsecase(repo)
		csvData := csvHeader + ",Female,50,0,0,No,Private,Rural,N/A,N/A,Unknown,0\n"

		_, err := usecase.ImportCSV(ctx, strings.NewReader(csvData), "stroke.csv")
		assert.NoError(t, err)

		patient := repo.inserted[constvars.ResourcePatient][0]
		assert.NotEmpty(t, patient["id"])
	})

	t.Run("unreadable header fails the whole request", func(t *testing.T) {
		repo := newFakeResourceRepository()
		usecase, _, _ := newTestImportUsecase(repo)

		_, err := usecase.ImportCSV(ctx, strings.NewReader(""), "empty.csv")
		assert.Error(t, err)
	})
}

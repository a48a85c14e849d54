package imports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/dto/responses"
	"strokewatch-service/internal/pkg/exceptions"
	"strokewatch-service/internal/pkg/fhir_dto"
	"strokewatch-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type importUsecase struct {
	ResourceRepository contracts.ResourceRepository
	Storage            contracts.Storage
	EventPublisher     contracts.EventPublisher
	Log                *zap.Logger

	now func() time.Time
}

func NewImportUsecase(
	resourceRepository contracts.ResourceRepository,
	storage contracts.Storage,
	eventPublisher contracts.EventPublisher,
	log *zap.Logger,
) contracts.ImportUsecase {
	return &importUsecase{
		ResourceRepository: resourceRepository,
		Storage:            storage,
		EventPublisher:     eventPublisher,
		Log:                log,
		now:                time.Now,
	}
}

// row is one parsed CSV record keyed by header name.
type row map[string]string

// ImportCSV loads a stroke dataset export. Rows are independent: a bad row is
// recorded and skipped, the rest of the file still imports.
func (u *importUsecase) ImportCSV(ctx context.Context, file io.Reader, fileName string) (*responses.ImportResponse, error) {
	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, exceptions.ErrCannotParseCSV(err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, exceptions.ErrCannotParseCSV(err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}

	response := &responses.ImportResponse{Success: true}
	rowNumber := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNumber++
		if err != nil {
			response.Errors = append(response.Errors, fmt.Sprintf("row %d: %v", rowNumber, err))
			continue
		}

		r := make(row, len(header))
		for i, name := range header {
			if i < len(record) {
				r[name] = strings.TrimSpace(record[i])
			}
		}

		if err := u.importRow(ctx, r, response); err != nil {
			response.Errors = append(response.Errors, fmt.Sprintf("row %d: %v", rowNumber, err))
		}
	}

	u.archiveAndNotify(ctx, raw, fileName, response)

	u.Log.Info("csv import finished",
		zap.String("file_name", fileName),
		zap.Int("patients", response.Patients),
		zap.Int("observations", response.Observations),
		zap.Int("conditions", response.Conditions),
		zap.Int("errors", len(response.Errors)),
	)
	return response, nil
}

func (u *importUsecase) importRow(ctx context.Context, r row, response *responses.ImportResponse) error {
	patientID := r["id"]
	if patientID == "" {
		patientID = uuid.NewString()
	}

	patient := u.buildPatient(patientID, r)
	patientDoc, err := utils.StructToMap(patient)
	if err != nil {
		return err
	}
	if err := u.ResourceRepository.Insert(ctx, constvars.ResourcePatient, patientDoc); err != nil {
		return err
	}
	response.Patients++

	subjectRef := constvars.ResourcePatient + "/" + patientID

	type conditionFlag struct {
		column  string
		system  string
		code    string
		display string
	}
	for _, flag := range []conditionFlag{
		{"hypertension", constvars.CodingSystemSNOMED, constvars.CodeHypertensionSNOMED, "Hypertensive disorder"},
		{"heart_disease", constvars.CodingSystemSNOMED, constvars.CodeHeartDiseaseSNOMED, "Heart disease"},
		{"stroke", constvars.CodingSystemSNOMED, constvars.CodeStrokeSNOMED, "Cerebrovascular accident"},
	} {
		if r[flag.column] != "1" {
			continue
		}
		condition := u.buildCondition(subjectRef, flag.system, flag.code, flag.display)
		doc, err := utils.StructToMap(condition)
		if err != nil {
			return err
		}
		if err := u.ResourceRepository.Insert(ctx, constvars.ResourceCondition, doc); err != nil {
			return err
		}
		response.Conditions++
	}

	if value, ok := parseNumericCell(r["avg_glucose_level"]); ok {
		if err := u.insertQuantityObservation(ctx, subjectRef, constvars.CodeGlucoseLOINC, "Glucose [Mass/volume] in Blood", value, "mg/dL", "laboratory"); err != nil {
			return err
		}
		response.Observations++
	}
	if value, ok := parseNumericCell(r["bmi"]); ok {
		if err := u.insertQuantityObservation(ctx, subjectRef, constvars.CodeBMILOINC, "Body mass index (BMI) [Ratio]", value, "kg/m2", "laboratory"); err != nil {
			return err
		}
		response.Observations++
	}
	if smoking := r["smoking_status"]; smoking != "" && !strings.EqualFold(smoking, "unknown") {
		observation := u.buildObservation(subjectRef, constvars.CodeSmokingStatusLOINC, "Tobacco smoking status", "social-history")
		observation.ValueString = smoking
		doc, err := utils.StructToMap(observation)
		if err != nil {
			return err
		}
		if err := u.ResourceRepository.Insert(ctx, constvars.ResourceObservation, doc); err != nil {
			return err
		}
		response.Observations++
	}
	return nil
}

func (u *importUsecase) buildPatient(patientID string, r row) *fhir_dto.Patient {
	patient := &fhir_dto.Patient{
		ResourceType: constvars.ResourcePatient,
		ID:           patientID,
		Meta:         &fhir_dto.Meta{LastUpdated: utils.FhirInstant(u.now())},
		Gender:       strings.ToLower(r["gender"]),
	}

	if age, ok := parseNumericCell(r["age"]); ok {
		birthYear := u.now().UTC().Year() - int(age)
		patient.BirthDate = fmt.Sprintf("%04d-01-01", birthYear)
	}

	switch strings.ToLower(r["ever_married"]) {
	case "yes", "1", "true":
		patient.MaritalStatus = maritalStatus(constvars.MaritalStatusMarried, "Married")
	case "no", "0", "false":
		patient.MaritalStatus = maritalStatus(constvars.MaritalStatusNeverMarried, "Never Married")
	}

	switch strings.ToLower(r["residence_type"]) {
	case "urban":
		patient.Address = []fhir_dto.Address{{Use: "home", City: "Urban"}}
	case "rural":
		patient.Address = []fhir_dto.Address{{Use: "home"}}
	}

	if workType := r["work_type"]; workType != "" {
		patient.Extension = []fhir_dto.Extension{
			{Url: constvars.ExtensionURLWorkType, ValueString: workType},
		}
	}
	return patient
}

func (u *importUsecase) buildCondition(subjectRef, system, code, display string) *fhir_dto.Condition {
	return &fhir_dto.Condition{
		ResourceType: constvars.ResourceCondition,
		ID:           uuid.NewString(),
		Meta:         &fhir_dto.Meta{LastUpdated: utils.FhirInstant(u.now())},
		ClinicalStatus: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{
				{
					System: constvars.CodingSystemConditionClinical,
					Code:   constvars.FhirConditionClinicalStatusActive,
				},
			},
		},
		Code: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{
				{System: system, Code: code, Display: display},
			},
			Text: display,
		},
		Subject:      &fhir_dto.Reference{Reference: subjectRef},
		RecordedDate: utils.FhirInstant(u.now()),
	}
}

func (u *importUsecase) buildObservation(subjectRef, loincCode, display, category string) *fhir_dto.Observation {
	return &fhir_dto.Observation{
		ResourceType: constvars.ResourceObservation,
		ID:           uuid.NewString(),
		Meta:         &fhir_dto.Meta{LastUpdated: utils.FhirInstant(u.now())},
		Status:       constvars.FhirObservationStatusFinal,
		Category: []fhir_dto.CodeableConcept{
			{
				Coding: []fhir_dto.Coding{
					{System: constvars.CodingSystemObservationCategory, Code: category},
				},
			},
		},
		Code: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{
				{System: constvars.CodingSystemLOINC, Code: loincCode, Display: display},
			},
			Text: display,
		},
		Subject:           &fhir_dto.Reference{Reference: subjectRef},
		EffectiveDateTime: utils.FhirInstant(u.now()),
	}
}

func (u *importUsecase) insertQuantityObservation(ctx context.Context, subjectRef, loincCode, display string, value float64, unit, category string) error {
	observation := u.buildObservation(subjectRef, loincCode, display, category)
	observation.ValueQuantity = &fhir_dto.Quantity{
		Value:  value,
		Unit:   unit,
		System: "http://unitsofmeasure.org",
		Code:   unit,
	}
	doc, err := utils.StructToMap(observation)
	if err != nil {
		return err
	}
	return u.ResourceRepository.Insert(ctx, constvars.ResourceObservation, doc)
}

// archiveAndNotify stores the raw file and announces completion. Both are best
// effort; import results stand either way.
func (u *importUsecase) archiveAndNotify(ctx context.Context, raw []byte, fileName string, response *responses.ImportResponse) {
	objectName := fmt.Sprintf("imports/%s-%s", u.now().UTC().Format("20060102T150405Z"), fileName)
	if _, err := u.Storage.UploadFile(ctx, bytes.NewReader(raw), objectName, int64(len(raw)), constvars.MIMETextCSV); err != nil {
		u.Log.Warn("csv archive upload failed", zap.String("object_name", objectName), zap.Error(err))
	}

	if err := u.EventPublisher.Publish(ctx, constvars.EventImportCompleted, map[string]interface{}{
		"fileName":     fileName,
		"patients":     response.Patients,
		"observations": response.Observations,
		"conditions":   response.Conditions,
		"errors":       len(response.Errors),
	}); err != nil {
		u.Log.Warn("import event not published", zap.Error(err))
	}
}

func maritalStatus(code, text string) *fhir_dto.CodeableConcept {
	return &fhir_dto.CodeableConcept{
		Coding: []fhir_dto.Coding{
			{System: constvars.CodingSystemMaritalStatus, Code: code},
		},
		Text: text,
	}
}

// parseNumericCell rejects empty and "N/A" cells instead of zero-filling.
func parseNumericCell(value string) (float64, bool) {
	if value == "" || strings.EqualFold(value, "n/a") {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

package utils

import (
	"time"

	"github.com/goccy/go-json"
)

// StructToMap converts a typed resource into the open-map document form the
// resource store works with.
func StructToMap(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	doc := make(map[string]interface{})
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// MapToStruct decodes an open-map document into a typed resource.
func MapToStruct(doc map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// FhirInstant renders a timestamp the way meta.lastUpdated and
// occurrenceDateTime are stored.
func FhirInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func ParseFhirInstant(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSanitizeStorageFields(t *testing.T) {
	t.Run("storage-only fields are stripped", func(t *testing.T) {
		doc := map[string]interface{}{
			"_id":        primitive.NewObjectID(),
			"_revision":  int32(3),
			"_createdAt": "2025-06-01T12:00:00Z",
			"id":         "p-1",
		}

		sanitizeStorageFields(doc)

		assert.NotContains(t, doc, "_id")
		assert.NotContains(t, doc, "_revision")
		assert.NotContains(t, doc, "_createdAt")
	})

	t.Run("domain fields survive", func(t *testing.T) {
		doc := map[string]interface{}{
			"_id":          primitive.NewObjectID(),
			"_revision":    int32(1),
			"_createdAt":   "2025-06-01T12:00:00Z",
			"resourceType": "Patient",
			"id":           "p-1",
			"gender":       "female",
			"birthDate":    "1960-03-15",
			"meta":         map[string]interface{}{"lastUpdated": "2025-06-01T12:00:00Z"},
		}

		sanitizeStorageFields(doc)

		assert.Equal(t, "Patient", doc["resourceType"])
		assert.Equal(t, "p-1", doc["id"])
		assert.Equal(t, "female", doc["gender"])
		assert.Equal(t, "1960-03-15", doc["birthDate"])
		assert.Contains(t, doc, "meta")
		assert.Len(t, doc, 5)
	})

	t.Run("documents without storage fields pass through unchanged", func(t *testing.T) {
		doc := map[string]interface{}{
			"resourceType": "Observation",
			"id":           "o-1",
			"status":       "final",
		}

		sanitizeStorageFields(doc)

		assert.Len(t, doc, 3)
	})
}

package form

import (
	"context"
	"testing"

	apperrors "agency-forms/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func mockTemplateRepo(mt *mtest.T) *MongoTemplateRepository {
	return &MongoTemplateRepository{
		templates: mt.DB.Collection("form_templates"),
		sections:  mt.DB.Collection("form_sections"),
		fields:    mt.DB.Collection("form_fields"),
	}
}

// deletedCollections lists the collections targeted by delete commands, in order.
func deletedCollections(events []*event.CommandStartedEvent) []string {
	var out []string
	for _, e := range events {
		if e.CommandName == "delete" {
			out = append(out, e.Command.Lookup("delete").StringValue())
		}
	}
	return out
}

func TestCreateRollsBackOnPartialInsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	duplicate := mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"})
	deleted := mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1})

	mt.Run("section insert fails", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), duplicate, deleted, deleted, deleted)

		tmpl := quoteTemplate()
		err := mockTemplateRepo(mt).Create(context.Background(), tmpl)

		require.Error(mt, err)
		var appErr *apperrors.AppError
		require.ErrorAs(mt, err, &appErr)
		assert.Equal(mt, apperrors.ErrCodeStorage, appErr.Code)
		assert.Equal(mt, []string{"form_fields", "form_sections", "form_templates"}, deletedCollections(mt.GetAllStartedEvents()))
	})

	mt.Run("field insert fails", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}), duplicate, deleted, deleted, deleted)

		err := mockTemplateRepo(mt).Create(context.Background(), quoteTemplate())

		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "insert form fields")
		assert.Equal(mt, []string{"form_fields", "form_sections", "form_templates"}, deletedCollections(mt.GetAllStartedEvents()))
	})

	mt.Run("complete tree leaves nothing to undo", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		tmpl := quoteTemplate()
		require.NoError(mt, mockTemplateRepo(mt).Create(context.Background(), tmpl))
		assert.False(mt, tmpl.ID.IsZero())
		assert.Empty(mt, deletedCollections(mt.GetAllStartedEvents()))
	})
}

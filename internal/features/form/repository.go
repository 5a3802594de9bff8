package form

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "agency-forms/internal/common/errors"
	"agency-forms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TemplateRepository interface {
	Create(ctx context.Context, template *FormTemplate) error
	GetByID(ctx context.Context, id string) (*FormTemplate, error)
	List(ctx context.Context, filter ListFilter) ([]FormTemplate, error)
	UpdateMeta(ctx context.Context, id string, update TemplateUpdate) error
	Delete(ctx context.Context, id string) error
}

// MongoTemplateRepository stores templates, sections and fields in three collections
// linked by template_id and section_id.
type MongoTemplateRepository struct {
	templates *mongo.Collection
	sections  *mongo.Collection
	fields    *mongo.Collection
}

func NewMongoTemplateRepository(db *database.MongodbDB) *MongoTemplateRepository {
	return &MongoTemplateRepository{
		templates: db.DB.Collection("form_templates"),
		sections:  db.DB.Collection("form_sections"),
		fields:    db.DB.Collection("form_fields"),
	}
}

const rollbackTimeout = 10 * time.Second

var treeOrder = bson.D{{Key: "sort_order", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

// EnsureIndexes creates the lookup indexes used to assemble a template tree.
func (r *MongoTemplateRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.sections.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "template_id", Value: 1}, {Key: "sort_order", Value: 1}},
	}); err != nil {
		return fmt.Errorf("form_sections index: %w", err)
	}
	if _, err := r.fields.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "section_id", Value: 1}, {Key: "sort_order", Value: 1}},
	}); err != nil {
		return fmt.Errorf("form_fields index: %w", err)
	}
	if _, err := r.templates.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "line_of_business", Value: 1}},
	}); err != nil {
		return fmt.Errorf("form_templates index: %w", err)
	}
	return nil
}

func (r *MongoTemplateRepository) Create(ctx context.Context, template *FormTemplate) error {
	now := time.Now()
	if template.ID.IsZero() {
		template.ID = primitive.NewObjectID()
	}
	if template.CreatedAt.IsZero() {
		template.CreatedAt = now
	}
	template.UpdatedAt = now

	if _, err := r.templates.InsertOne(ctx, template); err != nil {
		return apperrors.NewStorageError("insert form template", err)
	}

	var sectionDocs, fieldDocs []interface{}
	for i := range template.Sections {
		s := &template.Sections[i]
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		s.TemplateID = template.ID
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		sectionDocs = append(sectionDocs, s)

		for j := range s.Fields {
			f := &s.Fields[j]
			if f.ID.IsZero() {
				f.ID = primitive.NewObjectID()
			}
			f.SectionID = s.ID
			if f.CreatedAt.IsZero() {
				f.CreatedAt = now
			}
			fieldDocs = append(fieldDocs, f)
		}
	}

	if len(sectionDocs) > 0 {
		if _, err := r.sections.InsertMany(ctx, sectionDocs, options.InsertMany().SetOrdered(true)); err != nil {
			return r.rollback(ctx, template, apperrors.NewStorageError("insert form sections", err))
		}
	}
	if len(fieldDocs) > 0 {
		if _, err := r.fields.InsertMany(ctx, fieldDocs, options.InsertMany().SetOrdered(true)); err != nil {
			return r.rollback(ctx, template, apperrors.NewStorageError("insert form fields", err))
		}
	}
	return nil
}

// rollback removes whatever part of a template tree was written before cause.
// It runs even when ctx is already cancelled.
func (r *MongoTemplateRepository) rollback(ctx context.Context, template *FormTemplate, cause error) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	sectionIDs := make([]primitive.ObjectID, len(template.Sections))
	for i, s := range template.Sections {
		sectionIDs[i] = s.ID
	}

	var errs []error
	if _, err := r.fields.DeleteMany(ctx, bson.M{"section_id": bson.M{"$in": sectionIDs}}); err != nil {
		errs = append(errs, fmt.Errorf("roll back form fields: %w", err))
	}
	if _, err := r.sections.DeleteMany(ctx, bson.M{"template_id": template.ID}); err != nil {
		errs = append(errs, fmt.Errorf("roll back form sections: %w", err))
	}
	if _, err := r.templates.DeleteOne(ctx, bson.M{"_id": template.ID}); err != nil {
		errs = append(errs, fmt.Errorf("roll back form template: %w", err))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{cause}, errs...)...)
	}
	return cause
}

func (r *MongoTemplateRepository) GetByID(ctx context.Context, id string) (*FormTemplate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewTemplateNotFound(id)
	}

	var template FormTemplate
	if err := r.templates.FindOne(ctx, bson.M{"_id": oid}).Decode(&template); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewTemplateNotFound(id)
		}
		return nil, apperrors.NewStorageError("get form template", err)
	}

	sections, err := r.loadSections(ctx, oid)
	if err != nil {
		return nil, err
	}
	template.Sections = sections
	return &template, nil
}

func (r *MongoTemplateRepository) loadSections(ctx context.Context, templateID primitive.ObjectID) ([]FormSection, error) {
	cursor, err := r.sections.Find(ctx, bson.M{"template_id": templateID}, options.Find().SetSort(treeOrder))
	if err != nil {
		return nil, apperrors.NewStorageError("list form sections", err)
	}
	var sections []FormSection
	if err := cursor.All(ctx, &sections); err != nil {
		return nil, apperrors.NewStorageError("decode form sections", err)
	}
	if len(sections) == 0 {
		return []FormSection{}, nil
	}

	ids := make([]primitive.ObjectID, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}

	cursor, err = r.fields.Find(ctx, bson.M{"section_id": bson.M{"$in": ids}}, options.Find().SetSort(treeOrder))
	if err != nil {
		return nil, apperrors.NewStorageError("list form fields", err)
	}
	var fields []FormField
	if err := cursor.All(ctx, &fields); err != nil {
		return nil, apperrors.NewStorageError("decode form fields", err)
	}

	bySection := make(map[primitive.ObjectID][]FormField, len(sections))
	for _, f := range fields {
		bySection[f.SectionID] = append(bySection[f.SectionID], f)
	}
	for i := range sections {
		sections[i].Fields = bySection[sections[i].ID]
		if sections[i].Fields == nil {
			sections[i].Fields = []FormField{}
		}
	}
	return sections, nil
}

// List returns template headers without their sections.
func (r *MongoTemplateRepository) List(ctx context.Context, filter ListFilter) ([]FormTemplate, error) {
	query := bson.M{}
	if filter.ActiveOnly {
		query["is_active"] = true
	}
	if filter.LineOfBusiness != "" {
		query["line_of_business"] = filter.LineOfBusiness
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.templates.Find(ctx, query, opts)
	if err != nil {
		return nil, apperrors.NewStorageError("list form templates", err)
	}
	defer cursor.Close(ctx)

	templates := []FormTemplate{}
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, apperrors.NewStorageError("decode form templates", err)
	}
	return templates, nil
}

func (r *MongoTemplateRepository) UpdateMeta(ctx context.Context, id string, update TemplateUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NewTemplateNotFound(id)
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}

	res, err := r.templates.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return apperrors.NewStorageError("update form template", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NewTemplateNotFound(id)
	}
	return nil
}

// Delete removes the template together with its sections and fields.
func (r *MongoTemplateRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NewTemplateNotFound(id)
	}

	cursor, err := r.sections.Find(ctx, bson.M{"template_id": oid}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return apperrors.NewStorageError("list form sections", err)
	}
	var sectionIDs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &sectionIDs); err != nil {
		return apperrors.NewStorageError("decode form sections", err)
	}

	if len(sectionIDs) > 0 {
		ids := make([]primitive.ObjectID, len(sectionIDs))
		for i, s := range sectionIDs {
			ids[i] = s.ID
		}
		if _, err := r.fields.DeleteMany(ctx, bson.M{"section_id": bson.M{"$in": ids}}); err != nil {
			return apperrors.NewStorageError("delete form fields", err)
		}
		if _, err := r.sections.DeleteMany(ctx, bson.M{"template_id": oid}); err != nil {
			return apperrors.NewStorageError("delete form sections", err)
		}
	}

	res, err := r.templates.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperrors.NewStorageError("delete form template", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NewTemplateNotFound(id)
	}
	return nil
}

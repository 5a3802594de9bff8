package form

import (
	"sort"
	"time"

	common_models "agency-forms/internal/common/models"
	"agency-forms/pkg/condition"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SelectOption struct {
	Label string `json:"label" bson:"label"`
	Value string `json:"value" bson:"value"`
}

type ValidationRules struct {
	MinLength      *int     `json:"minLength,omitempty" bson:"minLength,omitempty"`
	MaxLength      *int     `json:"maxLength,omitempty" bson:"maxLength,omitempty"`
	Min            *float64 `json:"min,omitempty" bson:"min,omitempty"`
	Max            *float64 `json:"max,omitempty" bson:"max,omitempty"`
	Pattern        string   `json:"pattern,omitempty" bson:"pattern,omitempty"`
	PatternMessage string   `json:"patternMessage,omitempty" bson:"patternMessage,omitempty"`
}

// ConditionalLogic shows a field only while Operator(values[Field], Value) holds.
type ConditionalLogic struct {
	Field    string             `json:"field" bson:"field"`
	Operator condition.Operator `json:"operator" bson:"operator"`
	Value    interface{}        `json:"value" bson:"value"`
}

type FormField struct {
	ID               primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	SectionID        primitive.ObjectID   `json:"section_id" bson:"section_id"`
	Name             string               `json:"name" bson:"name"`
	Label            string               `json:"label" bson:"label"`
	FieldType        FieldType            `json:"field_type" bson:"field_type"`
	EzlynxMapping    string               `json:"ezlynx_mapping,omitempty" bson:"ezlynx_mapping,omitempty"`
	Placeholder      string               `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
	HelpText         string               `json:"help_text,omitempty" bson:"help_text,omitempty"`
	IsRequired       bool                 `json:"is_required" bson:"is_required"`
	SortOrder        int                  `json:"sort_order" bson:"sort_order"`
	LineOfBusiness   common_models.LOBSet `json:"line_of_business" bson:"line_of_business"`
	Options          []SelectOption       `json:"options" bson:"options"`
	ValidationRules  ValidationRules      `json:"validation_rules" bson:"validation_rules"`
	ConditionalLogic *ConditionalLogic    `json:"conditional_logic,omitempty" bson:"conditional_logic,omitempty"`
	DefaultValue     interface{}          `json:"default_value,omitempty" bson:"default_value,omitempty"`
	GridCols         int                  `json:"grid_cols" bson:"grid_cols"`
	CreatedAt        time.Time            `json:"created_at" bson:"created_at"`
}

type FormSection struct {
	ID                primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	TemplateID        primitive.ObjectID   `json:"template_id" bson:"template_id"`
	Name              string               `json:"name" bson:"name"`
	Label             string               `json:"label" bson:"label"`
	Description       string               `json:"description,omitempty" bson:"description,omitempty"`
	SortOrder         int                  `json:"sort_order" bson:"sort_order"`
	LineOfBusiness    common_models.LOBSet `json:"line_of_business" bson:"line_of_business"`
	IsCollapsible     bool                 `json:"is_collapsible" bson:"is_collapsible"`
	IsExpandedDefault bool                 `json:"is_expanded_default" bson:"is_expanded_default"`
	Fields            []FormField          `json:"fields" bson:"-"`
	CreatedAt         time.Time            `json:"created_at" bson:"created_at"`
}

type FormTemplate struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name           string               `json:"name" bson:"name"`
	Description    string               `json:"description,omitempty" bson:"description,omitempty"`
	LineOfBusiness common_models.LOBSet `json:"line_of_business" bson:"line_of_business"`
	IsActive       bool                 `json:"is_active" bson:"is_active"`
	IsMaster       bool                 `json:"is_master" bson:"is_master"`
	Sections       []FormSection        `json:"sections" bson:"-"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`
}

// TemplateUpdate carries the editable template attributes. Nil means unchanged.
type TemplateUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type ListFilter struct {
	ActiveOnly     bool
	LineOfBusiness common_models.LineOfBusiness
}

// OrderedSections returns the sections by sort_order. Equal sort orders keep their stored order.
func (t *FormTemplate) OrderedSections() []FormSection {
	out := make([]FormSection, len(t.Sections))
	copy(out, t.Sections)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// OrderedFields returns the fields by sort_order. Equal sort orders keep their stored order.
func (s *FormSection) OrderedFields() []FormField {
	out := make([]FormField, len(s.Fields))
	copy(out, s.Fields)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// Fields returns every field of the template in render order.
func (t *FormTemplate) Fields() []FormField {
	var out []FormField
	for _, s := range t.OrderedSections() {
		out = append(out, s.OrderedFields()...)
	}
	return out
}

// FieldByName looks a field up by its submission-data key.
func (t *FormTemplate) FieldByName(name string) (*FormField, bool) {
	for i := range t.Sections {
		for j := range t.Sections[i].Fields {
			if t.Sections[i].Fields[j].Name == name {
				return &t.Sections[i].Fields[j], true
			}
		}
	}
	return nil, false
}

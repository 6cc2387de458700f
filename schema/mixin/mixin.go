// Package mixin provides reusable declaration fragments for apiclient
// schemas.
//
// A mixin is a set of attribute and relation declarations shared between
// schemas. Mixed-in declarations are merged in front of the schema's own:
//
//	func (User) Mixin() []apiclient.Mixin {
//	    return []apiclient.Mixin{
//	        mixin.ID{},   // uuid id
//	        mixin.Time{}, // created_at, updated_at
//	    }
//	}
//
// To create a custom mixin, embed Schema and override the methods you
// need:
//
//	type AuditMixin struct {
//	    mixin.Schema
//	}
//
//	func (AuditMixin) Attributes() []apiclient.Attribute {
//	    return []apiclient.Attribute{
//	        attr.String("created_by"),
//	        attr.String("updated_by"),
//	    }
//	}
package mixin

import (
	apiclient "github.com/TerraSkye/api-client"
	"github.com/TerraSkye/api-client/schema/attr"
)

// Schema is the default implementation for the apiclient.Mixin
// interface. It should be embedded in all custom mixin definitions.
type Schema struct{}

// Attributes returns the attributes of the mixin.
// Override this method to add custom attributes.
func (Schema) Attributes() []apiclient.Attribute { return nil }

// Relations returns the relations of the mixin.
// Override this method to add custom relations.
func (Schema) Relations() []apiclient.Relation { return nil }

// schema mixin must implement `Mixin` interface.
var _ apiclient.Mixin = (*Schema)(nil)

// ID adds a uuid id attribute, the conventional primary identifier of
// API resources.
type ID struct{ Schema }

// Attributes of the id mixin.
func (ID) Attributes() []apiclient.Attribute {
	return []apiclient.Attribute{
		attr.UUID("id"),
	}
}

// id mixin must implement `Mixin` interface.
var _ apiclient.Mixin = (*ID)(nil)

// CreateTime adds a created_at time attribute.
type CreateTime struct{ Schema }

// Attributes of the create time mixin.
func (CreateTime) Attributes() []apiclient.Attribute {
	return []apiclient.Attribute{
		attr.Time("created_at"),
	}
}

// create time mixin must implement `Mixin` interface.
var _ apiclient.Mixin = (*CreateTime)(nil)

// UpdateTime adds an updated_at time attribute.
type UpdateTime struct{ Schema }

// Attributes of the update time mixin.
func (UpdateTime) Attributes() []apiclient.Attribute {
	return []apiclient.Attribute{
		attr.Time("updated_at"),
	}
}

// update time mixin must implement `Mixin` interface.
var _ apiclient.Mixin = (*UpdateTime)(nil)

// Time composes CreateTime and UpdateTime mixins.
// Provides both created_at and updated_at attributes.
type Time struct{ Schema }

// Attributes of the time mixin.
func (Time) Attributes() []apiclient.Attribute {
	return append(CreateTime{}.Attributes(), UpdateTime{}.Attributes()...)
}

// time mixin must implement `Mixin` interface.
var _ apiclient.Mixin = (*Time)(nil)

// Package schema contains the declaration packages for apiclient model
// types.
//
// A model schema embeds apiclient.Schema and declares its attributes,
// relations, aliases and mixins; registering it on a catalog compiles
// the declaration into the runtime registry:
//
//	type User struct {
//	    apiclient.Schema
//	}
//
//	func (User) Attributes() []apiclient.Attribute {
//	    return []apiclient.Attribute{
//	        attr.String("name").Required(),
//	        attr.String("email"),
//	    }
//	}
//
//	func (User) Relations() []apiclient.Relation {
//	    return []apiclient.Relation{
//	        rel.ToMany("posts", Post.Type),
//	    }
//	}
//
// The sub-packages provide the builders:
//
//   - attr: attribute builders with per-type validation rules
//   - rel: relation builders with cardinality and target type
//   - mixin: reusable declaration fragments
package schema

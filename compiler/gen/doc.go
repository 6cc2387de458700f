// Package gen turns loaded schema snapshots into typed Go bindings.
//
// The generator emits one file per model type with a struct embedding
// *apiclient.Model, typed getters and setters for each attribute, and
// context-taking accessors for each relation, plus a runtime file that
// registers every schema declaration in a catalog. Files are written
// in parallel and formatted before hitting disk.
package gen

// Package rest is the transport collaborator for the object-mapping
// runtime. It wraps net/http with the headers and error handling an
// API client needs, unwraps response envelopes into plain mappings,
// and implements apiclient.Resolver so links fetched from the server
// materialize as models on first read.
package rest

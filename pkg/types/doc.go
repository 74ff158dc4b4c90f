// Package types defines the entity types, change sets, validation rules,
// and standard errors shared by the coffer storage and service layers.
package types

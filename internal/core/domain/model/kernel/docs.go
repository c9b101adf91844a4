// Package kernel provides shared value objects used across the domain model.
// It currently contains the UUID identity type that all aggregates use for
// their primary identifiers.
package kernel

// Package entur wraps the two remote Entur services the CLI depends on: the
// geocoder autocomplete used to find candidate places, and the journey
// planner GraphQL endpoint used to list upcoming departures for a stop. Both
// are thin collaborators; the resolution logic lives elsewhere.
package entur

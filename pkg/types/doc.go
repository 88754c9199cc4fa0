/*
Package types defines the shared data model for the health platform
synchronization engine.

The types package contains the closed category vocabulary, authorization
states, domain entities, and the record/snapshot shapes exchanged with the
external health platform. It has no dependencies on other engine packages and
performs no I/O.

# Core Types

Category:
  - Closed enum of every platform data category the engine touches
  - Partitioned into WriteCategories and ReadCategories
  - A category may appear in both sets independently
  - Category.Unit() is total: unknown categories are unrepresentable
    in engine code rather than a runtime crash risk

AuthorizationStatus:
  - NotDetermined | Denied | Authorized per (category, direction)
  - Never persisted; recomputed from the platform on every query

Domain Entities:
  - Meal: line items with per-item nutrition snapshots
  - Symptom: pain level (0-3), Bristol stool type (1-7), urgency (0-3)
  - WaterIntake: one drink in milliliters
  - MedicationRecord: validity window + provenance + privacy class
  - All implement the Entity interface (ID, owner, timestamp)

TranslatedRecord:
  - One outgoing (category, value, unit, start, end, metadata) tuple
  - A single entity expands into zero or many records

HealthSnapshot:
  - Latest known value per monitored metric plus capture time
  - Replaced wholesale on each fetch cycle, never merged field-by-field
  - Absent map keys mean the metric was not captured that cycle

# Severity Scales

The engine's 0-3 pain and urgency vocabularies map onto the platform's
4-point Severity scale (not_present, mild, moderate, severe) via pure tables
in pkg/translate. Urgency has no "not present" rung; its minimum maps to
mild.

# Integration Points

This package is imported by:

  - pkg/translate: entity -> record mapping
  - pkg/platform: the platform client contract
  - pkg/authz, pkg/writer, pkg/fetch, pkg/observe, pkg/engine
*/
package types

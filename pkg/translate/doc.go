/*
Package translate holds the pure mapping layer between the app's domain
vocabulary and the platform's record shapes.

Every function here is pure (no I/O), total (every enum case handled), and
order-independent (output record order carries no meaning). Translation
failures are impossible by construction, so no error path exists for
entity -> record mapping.

# Mappings

Meal -> records:
  - Nutrients summed across line items; missing values sum as zero
  - One record per nutrient strictly greater than zero
  - Sodium milligrams divided by exactly 1000 for the gram-denominated
    category; water milliliters divided by exactly 1000 for liters

Symptom -> records (tie-breakable multi-rule, not a single switch):
  - Rule 1: pain != none  -> abdominal-cramps record, pain severity table
  - Rule 2: stool 1-2     -> constipation record
  - Rule 3: stool 6-7     -> diarrhea record, urgency severity table
  - Each rule gated by write authorization of its target category
  - No authorized rule output -> exactly one abdominal-cramps fallback,
    emitted regardless of authorization (best-effort, never dropped)

Severity tables:
  - pain:    none, mild, moderate, severe -> not_present, mild, moderate, severe
  - urgency: none, mild, moderate, severe -> mild, mild, moderate, severe
    (urgency has no not-present rung)

Incoming samples:
  - NormalizeValue converts a platform value to the category's canonical
    unit (rates to per-minute, pressure to mmHg, concentration to mg/dL,
    fractions to percent) using defined ratios, never approximations
*/
package translate

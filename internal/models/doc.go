// Package models defines the core domain models for quotewiz.
//
// # Wizard Payloads
//
// The wizard collects three payloads, one per input step:
//   - PersonalInfo: who is being insured
//   - VehicleInfo: what is being insured
//   - CoveragePreferences: how much coverage is wanted
//
// FormData bundles the three. A payload is nil until its step has been submitted,
// and the quote engine only accepts a FormData where all three are present.
//
// # Quotes
//
//   - Quote: one provider's offer for the submitted form
//   - QuotesResponse: every offer ranked by monthly premium, plus summary figures
//
// # Wire Format
//
// JSON field names are camelCase and match the names used by the browser form,
// so a payload posted by the UI decodes into these types unchanged. All numeric
// vehicle fields travel as strings and are parsed by the calculator.
package models

// Package submission implements the waitlist signup form lifecycle.
//
// A Controller owns the email the visitor typed, validates it locally, hands
// it to a Persister and turns the outcome into the message the view shows.
// Status moves Idle -> Validating -> Submitting -> Success|Failed within one
// attempt and goes back to Idle when the email is edited after an outcome.
// At most one persistence call is in flight per Controller.
package submission

// Package visitor gives each browser a stable anonymous ID, kept in a signed
// cookie session, so per-visitor state such as the contact form survives the
// POST-redirect-GET cycle.
package visitor

// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package uuid provides unique identifiers for the platform.

It wraps the standard UUID library behind the two generation flavors the
platform actually uses:

  - Random (v4): aggregate ids and device ids, where unpredictability matters.
  - Time-ordered (v7): request correlation ids, where sortability matters.

This is the mandatory ID type for all primary keys in the Inkwell ecosystem.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new random UUIDv4 string.
func New() string {
	return uuid.NewString()
}

// NewOrdered generates a new UUIDv7 string (time-sortable, millisecond precision).
func NewOrdered() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// IsValid reports whether s parses as a UUID of any version.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Package models contains domain types for registry-engine.
package models

import (
	"fmt"
	"strings"
)

// HTTPMethod is the method a registered URI definition serves. Stored as
// VARCHAR and enforced by a check constraint on the uri_defs table.
type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodPut    HTTPMethod = "PUT"
	MethodDelete HTTPMethod = "DELETE"
	MethodPatch  HTTPMethod = "PATCH"
)

// ParseHTTPMethod converts a string to an HTTPMethod, case-insensitively.
func ParseHTTPMethod(s string) (HTTPMethod, error) {
	m := HTTPMethod(strings.ToUpper(s))
	if !m.Valid() {
		return "", fmt.Errorf("invalid HTTP method %q: must be one of GET, POST, PUT, DELETE, PATCH", s)
	}
	return m, nil
}

// Valid reports whether m is one of the allowed methods.
func (m HTTPMethod) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return true
	}
	return false
}

// UseStatus marks a record as usable or retired. Stored as VARCHAR.
type UseStatus string

const (
	StatusUsable   UseStatus = "USABLE"
	StatusUnusable UseStatus = "UNUSABLE"
)

// ParseUseStatus converts a string to a UseStatus, case-insensitively.
func ParseUseStatus(s string) (UseStatus, error) {
	st := UseStatus(strings.ToUpper(s))
	if !st.Valid() {
		return "", fmt.Errorf("invalid use status %q: must be USABLE or UNUSABLE", s)
	}
	return st, nil
}

// Valid reports whether st is a known status.
func (st UseStatus) Valid() bool {
	return st == StatusUsable || st == StatusUnusable
}

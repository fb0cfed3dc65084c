// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// MembershipResult is the explicit outcome of a membership mutation.
// Callers can tell a successful change apart from a no-op and from
// an unresolved contact or category.
type MembershipResult int

const (
	// MembershipNotFound means the contact or the category does not exist
	// or is not owned by the caller. Nothing was changed.
	MembershipNotFound MembershipResult = iota

	// MembershipAdded means a new (contact, category) edge was inserted.
	MembershipAdded

	// MembershipAlreadyExists means the edge was already present.
	MembershipAlreadyExists

	// MembershipRemoved means an existing edge was deleted.
	MembershipRemoved

	// MembershipNotMember means there was no edge to remove.
	MembershipNotMember
)

// String implements [fmt.Stringer].
func (r MembershipResult) String() string {
	switch r {
	case MembershipAdded:
		return "added"
	case MembershipAlreadyExists:
		return "already_member"
	case MembershipRemoved:
		return "removed"
	case MembershipNotMember:
		return "not_member"
	default:
		return "not_found"
	}
}

// MarshalText lets the result be rendered as a JSON string.
func (r MembershipResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses the names written by [MembershipResult.MarshalText].
func (r *MembershipResult) UnmarshalText(text []byte) error {
	switch string(text) {
	case "added":
		*r = MembershipAdded
	case "already_member":
		*r = MembershipAlreadyExists
	case "removed":
		*r = MembershipRemoved
	case "not_member":
		*r = MembershipNotMember
	case "not_found":
		*r = MembershipNotFound
	default:
		return fmt.Errorf("unknown membership result %q", text)
	}
	return nil
}

// MembershipResponse is the body returned by membership routes.
type MembershipResponse struct {
	CategoryID int64            `json:"category_id"`
	ContactID  int64            `json:"contact_id"`
	Result     MembershipResult `json:"result"`
}

// SyncResult lists the category ids that were actually added to and
// removed from a contact while reconciling its membership with a desired
// set. Both slices are sorted ascending.
type SyncResult struct {
	Added   []int64 `json:"added"`
	Removed []int64 `json:"removed"`
}

// Changed reports whether the sync wrote anything.
func (s SyncResult) Changed() bool {
	return len(s.Added) > 0 || len(s.Removed) > 0
}

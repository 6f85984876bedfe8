package navigation

import (
	"strconv"
	"strings"
)

// ResolveParentID picks the parent resource id to preselect when a
// child-create flow can be entered from several navigation paths. Precedence,
// highest first:
//
//  1. routeParentID - the URL itself is scoped to a parent
//     (e.g. /farms/{farmID}/fields/new);
//  2. navStateParentID - a generic create route was reached via a link that
//     attached the parent as ephemeral context (query parameter);
//  3. neither - the operator picks a parent in the form.
//
// The function is pure and total: a malformed or non-positive candidate is
// treated as absent and falls through to the next source. The boolean is
// false only when no usable source remains.
func ResolveParentID(routeParentID, navStateParentID string) (int64, bool) {
	if id, ok := parseID(routeParentID); ok {
		return id, true
	}
	if id, ok := parseID(navStateParentID); ok {
		return id, true
	}
	return 0, false
}

// parseID coerces a candidate to the numeric identity type. Resource ids are
// positive integers; anything else is not an id.
func parseID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

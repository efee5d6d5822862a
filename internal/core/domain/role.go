package domain

// Role identifies the owner of an analyzed page. It drives artifact naming
// and marker assignment, never memory ownership: every role's passages and
// vectors are independent slices.
type Role string

// Available roles.
const (
	// RoleClient is the page being optimized.
	RoleClient Role = "client"

	// RoleCompetitor is the page being compared against.
	RoleCompetitor Role = "competitor"

	// RoleComparison is an additional reference page.
	RoleComparison Role = "comparison"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleCompetitor, RoleComparison:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// Required returns true if a failure for this role aborts the whole run.
// Only the client page is required; competitor and comparison pages are
// best-effort.
func (r Role) Required() bool {
	return r == RoleClient
}

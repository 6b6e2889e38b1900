package familytree

// ===============================
// Roles
// ===============================

type Role string

const (
	RoleFather   Role = "father"
	RoleMother   Role = "mother"
	RoleParent   Role = "parent"
	RoleRelative Role = "relative"
)

// RoleForGender maps the registering caregiver's gender to the role
// of the primary admin edge.
func RoleForGender(gender string) Role {
	switch gender {
	case "male":
		return RoleFather
	case "female":
		return RoleMother
	default:
		return RoleParent
	}
}

// CanInvite is the allow-list for issuing and cancelling invitations.
// Role is data, not hierarchy: relatives hold edges but cannot grow
// the tree.
func CanInvite(role string) bool {
	return role == string(RoleFather) || role == string(RoleMother)
}

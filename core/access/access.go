// Package access holds the static role-based access-control table.
// It is consulted synchronously by the presentation layer to gate
// visibility; no store owns it.
package access

// Role is a closed enumeration; a User carries exactly one.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleIntern   Role = "intern"
	RoleMentor   Role = "mentor"
	RoleHRAdmin  Role = "hr_admin"
	RoleTeamLead Role = "team_lead"
)

// Permission is a capability tag granted to roles via the fixed table below.
type Permission string

const (
	PermViewCourses       Permission = "view_courses"
	PermEnrollCourses     Permission = "enroll_courses"
	PermCreateCourses     Permission = "create_courses"
	PermEditCourses       Permission = "edit_courses"
	PermDeleteCourses     Permission = "delete_courses"
	PermViewUsers         Permission = "view_users"
	PermManageUsers       Permission = "manage_users"
	PermViewReports       Permission = "view_reports"
	PermCreateAssessments Permission = "create_assessments"
	PermTakeAssessments   Permission = "take_assessments"
	PermGradeAssessments  Permission = "grade_assessments"
	PermViewAllProgress   Permission = "view_all_progress"
)

var AllRoles = []Role{RoleEmployee, RoleIntern, RoleMentor, RoleHRAdmin, RoleTeamLead}

// rolePermissions is the total Role → Permissions mapping, fixed at compile
// time. Every member of AllRoles must have an entry here.
var rolePermissions = map[Role][]Permission{
	RoleEmployee: {
		PermViewCourses,
		PermEnrollCourses,
		PermTakeAssessments,
	},
	RoleIntern: {
		PermViewCourses,
		PermEnrollCourses,
		PermTakeAssessments,
	},
	RoleMentor: {
		PermViewCourses,
		PermEnrollCourses,
		PermCreateCourses,
		PermEditCourses,
		PermViewUsers,
		PermCreateAssessments,
		PermTakeAssessments,
		PermGradeAssessments,
		PermViewAllProgress,
	},
	RoleHRAdmin: {
		PermViewCourses,
		PermEnrollCourses,
		PermCreateCourses,
		PermEditCourses,
		PermDeleteCourses,
		PermViewUsers,
		PermManageUsers,
		PermViewReports,
		PermCreateAssessments,
		PermTakeAssessments,
		PermGradeAssessments,
		PermViewAllProgress,
	},
	RoleTeamLead: {
		PermViewCourses,
		PermEnrollCourses,
		PermCreateCourses,
		PermEditCourses,
		PermViewUsers,
		PermViewReports,
		PermCreateAssessments,
		PermTakeAssessments,
		PermGradeAssessments,
		PermViewAllProgress,
	},
}

func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

func (r Role) DisplayName() string {
	switch r {
	case RoleEmployee:
		return "Employee"
	case RoleIntern:
		return "Intern"
	case RoleMentor:
		return "Mentor"
	case RoleHRAdmin:
		return "HR Admin"
	case RoleTeamLead:
		return "Team Lead"
	}
	return "User"
}

// HasPermission reports whether role is granted perm.
// Unknown roles have no permissions (fail closed).
func HasPermission(role Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// PermissionsForRole returns all permissions granted to role.
func PermissionsForRole(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// IsAdmin is true only for the HR admin role.
func IsAdmin(role Role) bool {
	return role == RoleHRAdmin
}

func CanCreateContent(role Role) bool {
	return HasPermission(role, PermCreateCourses)
}

func CanManageUsers(role Role) bool {
	return HasPermission(role, PermManageUsers)
}

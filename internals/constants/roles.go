package constants

import "fmt"

const (
	RoleAdmin    = "admin"
	RoleCoach    = "coach"
	RoleGuardian = "guardian"
	RoleLearner  = "learner"
)

// Template pesan error role
const (
	ErrOnlyStaffCanAccess  = "Only coaches or admins can access %s."
	ErrOnlyAdminsCanAccess = "Only admins can access %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

var (
	StaffRoles = []string{RoleAdmin, RoleCoach}
	AdminOnly  = []string{RoleAdmin}
)

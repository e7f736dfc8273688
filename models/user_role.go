package models

type UserRole string

const (
	UserRoleSuperAdmin UserRole = "SUPERADMIN"
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleClient     UserRole = "CLIENTE"
)

var roleHumanName = map[UserRole]string{
	UserRoleSuperAdmin: "Суперадмин системы",
	UserRoleAdmin:      "Администратор",
	UserRoleClient:     "Клиент",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

// CanManage доступ к бэк-офису котировок
func (r UserRole) CanManage() bool {
	return r == UserRoleAdmin || r == UserRoleSuperAdmin
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

const SystemUser = "Система"

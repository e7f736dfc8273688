package dbmodels

import (
	"fmt"
	"quotation-backend/models"
	usersapimodels "quotation-backend/models/api/users"
	"strings"
	"time"
)

type User struct {
	BaseModel
	Password     string `gorm:"type:varchar(128)"`
	FirstName    string `gorm:"type:varchar(150)"`
	LastName     string `gorm:"type:varchar(150)"`
	Email        string `gorm:"type:varchar(255);uniqueIndex"`
	PhoneNumber  string `gorm:"type:varchar(20)"`
	DocumentType string `gorm:"type:varchar(20)"`
	Document     string `gorm:"type:varchar(30)"`
	IsActive     bool
	Role         models.UserRole `gorm:"type:varchar(50)"`
	LastLogin    *time.Time
}

func (r User) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", r.FirstName, r.LastName))
}

func (r User) ToProfile() usersapimodels.Profile {
	return usersapimodels.Profile{
		ID:            r.ID,
		Nombre:        r.FirstName,
		Apellido:      r.LastName,
		Email:         r.Email,
		Telefono:      r.PhoneNumber,
		TipoDocumento: r.DocumentType,
		Documento:     r.Document,
		Rol:           r.Role,
	}
}

func (r User) ToDashboard() usersapimodels.DashboardView {
	return usersapimodels.DashboardView{
		ID:       r.ID,
		Nombre:   r.GetFullName(),
		Email:    r.Email,
		Telefono: r.PhoneNumber,
		Rol:      r.Role,
		Rolname:  r.Role.ToHuman(),
		Activo:   r.IsActive,
		Creacion: r.CreatedAt,
	}
}

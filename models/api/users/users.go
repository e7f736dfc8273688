package usersapimodels

import (
	"net/mail"
	"quotation-backend/models"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Profile struct {
	ID            uint            `json:"id"`
	Nombre        string          `json:"nombre"`
	Apellido      string          `json:"apellido"`
	Email         string          `json:"email"`
	Telefono      string          `json:"telefono"`
	TipoDocumento string          `json:"tipoDocumento"`
	Documento     string          `json:"documento"`
	Rol           models.UserRole `json:"rol"`
}

type DashboardView struct {
	ID       uint            `json:"id"`
	Nombre   string          `json:"nombre"`
	Email    string          `json:"email"`
	Telefono string          `json:"telefono"`
	Rol      models.UserRole `json:"rol"`
	Rolname  string          `json:"rolNombre"`
	Activo   bool            `json:"activo"`
	Creacion time.Time       `json:"creacion"`
}

type RegisterRequest struct {
	Nombre        string `json:"nombre"`
	Apellido      string `json:"apellido"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Telefono      string `json:"telefono"`
	TipoDocumento string `json:"tipoDocumento"`
	Documento     string `json:"documento"`
}

func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Nombre) == "" {
		return errors.New("не указано имя")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("некорректный email")
	}
	if len(r.Password) < 6 {
		return errors.New("пароль должен содержать не менее 6 символов")
	}
	return nil
}

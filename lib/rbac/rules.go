package rbac

import (
	"quotation-backend/models"
)

var (
	ManagerRoleSet = []models.UserRole{models.UserRoleSuperAdmin, models.UserRoleAdmin}
	AllRoles       = []models.UserRole{models.UserRoleSuperAdmin, models.UserRoleAdmin, models.UserRoleClient}
)

func (i *impl) initRules() {
	i.quotation()
	i.product()
	i.category()
	i.users()
}

// доступ к конкретной котировке (владелец или менеджер) проверяется в обработчике
func (i *impl) quotation() {
	// VIEW
	i.RegisterRule(models.QuotationModule, models.ViewPermission, AllRoles, "/api/v1/cotizacion/{id} [get]", nil)
	i.RegisterRule(models.QuotationModule, models.ViewPermission, AllRoles, "/api/v1/cotizacion/{id}/historial [get]", nil)
	i.RegisterRule(models.QuotationModule, models.ViewPermission, AllRoles, "/api/v1/cotizacion/{id}/productos [get]", nil)
	i.RegisterRule(models.QuotationModule, models.ViewPermission, AllRoles, "/api/v1/cotizacion/productos-por-cotizacion/{id} [get]", nil)
	i.RegisterRule(models.QuotationModule, models.ViewPermission, AllRoles, "/api/v1/cotizacion/{id}/pdf [get]", nil)
	i.RegisterRule(models.QuotationModule, models.ViewPermission, AllRoles, "/api/v1/cotizacion/{id}/resumen [get]", nil)
	i.RegisterRule(models.QuotationModule, models.ViewPermission, AllRoles, "/api/v1/cotizacion/by-usuario-paginated/{id} [get]", SelfOrManagerFunc())
	// CREATE
	i.RegisterRule(models.QuotationModule, models.CreatePermission, AllRoles, "/api/v1/cotizacion/create [post]", nil)
	// MANAGE
	i.RegisterRule(models.QuotationModule, models.ManagePermission, ManagerRoleSet, "/api/v1/cotizacion/dashboard-paginated [get]", nil)
	i.RegisterRule(models.QuotationModule, models.ManagePermission, ManagerRoleSet, "/api/v1/cotizacion/dashboard-search [get]", nil)
	i.RegisterRule(models.QuotationModule, models.ManagePermission, ManagerRoleSet, "/api/v1/cotizacion/dashboard-quantity [get]", nil)
	i.RegisterRule(models.QuotationModule, models.ManagePermission, ManagerRoleSet, "/api/v1/cotizacion/dashboard-stats [get]", nil)
	i.RegisterRule(models.QuotationModule, models.EditPermission, ManagerRoleSet, "/api/v1/cotizacion/observaciones/{id} [put]", nil)
	// FLOW, клиент может только ответить на отправленную котировку
	i.RegisterRule(models.QuotationModule, models.FlowPermission, AllRoles, "/api/v1/cotizacion/change-state/{id} [put]", nil)
	// FILES
	i.RegisterRule(models.QuotationModule, models.FilesPermission, ManagerRoleSet, "/api/v1/cotizacion/create_pdf/{id} [post]", nil)
	// EXPORT
	i.RegisterRule(models.QuotationModule, models.ExportPermission, ManagerRoleSet, "/api/v1/cotizacion/export [get]", nil)
}

func (i *impl) product() {
	// просмотр каталога публичный
	i.RegisterRule(models.ProductModule, models.ManagePermission, ManagerRoleSet, "/api/v1/producto/dashboard-quantity [get]", nil)
	i.RegisterRule(models.ProductModule, models.ManagePermission, ManagerRoleSet, "/api/v1/producto [post]", nil)
	i.RegisterRule(models.ProductModule, models.ManagePermission, ManagerRoleSet, "/api/v1/producto/{id} [delete]", nil)
}

func (i *impl) category() {
	i.RegisterRule(models.CategoryModule, models.ManagePermission, ManagerRoleSet, "/api/v1/categoria [post]", nil)
	i.RegisterRule(models.CategoryModule, models.ManagePermission, ManagerRoleSet, "/api/v1/categoria/{id} [put]", nil)
	i.RegisterRule(models.CategoryModule, models.ManagePermission, ManagerRoleSet, "/api/v1/categoria/{id} [delete]", nil)
}

func (i *impl) users() {
	// VIEW
	i.RegisterRule(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/usuario/permisos [get]", nil)
	i.RegisterRule(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/usuario/{id} [get]", SelfOrManagerFunc())
	// MANAGE
	i.RegisterRule(models.UsersModule, models.ManagePermission, ManagerRoleSet, "/api/v1/usuario/dashboard-paginated [get]", nil)
	i.RegisterRule(models.UsersModule, models.ManagePermission, ManagerRoleSet, "/api/v1/usuario/dashboard-quantity [get]", nil)
}

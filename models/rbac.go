package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	QuotationModule Module = "QUOTATION"
	ProductModule   Module = "PRODUCT"
	CategoryModule  Module = "CATEGORY"
	UsersModule     Module = "USERS"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
	FilesPermission  Permission = "FILES"
	ExportPermission Permission = "EXPORT"
)

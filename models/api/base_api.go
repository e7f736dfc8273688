package apimodels

import (
	"math"
	"net/http"
)

type Response struct {
	Status  string      `json:"status"`            //результат обработки fail/success
	Message string      `json:"message,omitempty"` //сообщение ошибки
	Code    string      `json:"code,omitempty"`    //машинный код ошибки
	Data    interface{} `json:"data,omitempty"`    //данные ответа
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewCodeError(code, message string) Response {
	return Response{
		Status:  "fail",
		Code:    code,
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

// Коды ошибок для клиента
const (
	CodeNotFound            = "NOT_FOUND"
	CodeForbidden           = "FORBIDDEN"
	CodeValidation          = "VALIDATION"
	CodeTransitionRejected  = "TRANSITION_REJECTED"
	CodePdfNotAllowed       = "PDF_NOT_ALLOWED"
	CodeCategoryHasProducts = "CATEGORY_HAS_PRODUCTS"
	CodeDuplicate           = "DUPLICATE"
	CodeBusy                = "BUSY"
	CodeInternal            = "INTERNAL"
)

// Pagination параметры страницы, нумерация с 0
type Pagination struct {
	Page int `query:"page" json:"page"` // Страница (0,1,2..)
	Size int `query:"size" json:"size"` // Записей на странице
}

func (r Pagination) GetPage(defaultSize int) (page, size int) {
	page = 0
	size = defaultSize
	if size <= 0 {
		size = 10
	}
	if r.Page > 0 {
		page = r.Page
	}
	if r.Size > 0 {
		size = r.Size
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func NewPage[T any](content []T, page, size int, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(size)))
	}
	return Page[T]{
		Content:       content,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// CodedError ошибка обработчика с кодом для клиента
type CodedError struct {
	HttpStatus int
	Code       string
	Message    string
}

func (e CodedError) Error() string {
	return e.Message
}

func NewCodedError(httpStatus int, code, message string) error {
	return CodedError{
		HttpStatus: httpStatus,
		Code:       code,
		Message:    message,
	}
}

func ErrNotFound(message string) error {
	return NewCodedError(http.StatusNotFound, CodeNotFound, message)
}

func ErrForbidden(message string) error {
	return NewCodedError(http.StatusForbidden, CodeForbidden, message)
}

func ErrValidation(message string) error {
	return NewCodedError(http.StatusBadRequest, CodeValidation, message)
}

func ErrDuplicate(message string) error {
	return NewCodedError(http.StatusConflict, CodeDuplicate, message)
}

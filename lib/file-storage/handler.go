package filestorage

import (
	"context"
)

type Provider interface {
	UploadQuotationPdf(ctx context.Context, quotationID uint, fileName string, file []byte) (objectName string, err error)
	GetFile(ctx context.Context, objectName string) ([]byte, error)
	DeleteFile(ctx context.Context, objectName string) error
}

var Instance Provider

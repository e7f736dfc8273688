package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const pdfContentType = "application/pdf"

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func NewInstance(s3client *minio.Client, bucketName string) {
	Instance = &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

func (i impl) UploadQuotationPdf(ctx context.Context, quotationID uint, fileName string, file []byte) (objectName string, err error) {
	if i.s3client == nil {
		return "", errors.New("хранилище файлов не настроено")
	}
	objectName = quotationObjectName(quotationID, fileName)
	logger := log.
		WithField("quotation_id", quotationID).
		WithField("object_name", objectName)
	_, err = i.s3client.PutObject(ctx, i.bucketName, objectName, bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: pdfContentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки pdf в хранилище")
	}
	logger.Info("pdf котировки загружен в хранилище")
	return objectName, nil
}

func (i impl) GetFile(ctx context.Context, objectName string) ([]byte, error) {
	if i.s3client == nil {
		return nil, errors.New("хранилище файлов не настроено")
	}
	object, err := i.s3client.GetObject(ctx, i.bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return body, nil
}

func (i impl) DeleteFile(ctx context.Context, objectName string) error {
	if i.s3client == nil || objectName == "" {
		return nil
	}
	err := i.s3client.RemoveObject(ctx, i.bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления файла из хранилища")
	}
	return nil
}

func quotationObjectName(quotationID uint, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" {
		ext = ".pdf"
	}
	return fmt.Sprintf("quotations/%d/%s%s", quotationID, uuid.NewString(), ext)
}

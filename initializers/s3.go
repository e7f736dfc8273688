package initializers

import (
	"context"
	"quotation-backend/config"
	filestorage "quotation-backend/lib/file-storage"
	s3client "quotation-backend/s3"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		panic(errors.Wrap(err, "Ошибка инициализации клиента S3").Error())
	}

	err = s3client.MakeBucket(ctx, minioClient, config.Conf.S3.BucketName)
	if err != nil {
		log.
			WithField("bucket", config.Conf.S3.BucketName).
			WithError(err).
			Error("S3 соединение не удалось, бакет для pdf не создан")
	}

	s3client.Client = minioClient
	filestorage.NewInstance(minioClient, config.Conf.S3.BucketName)
	log.Info("S3 клиент успешно инициализирован")
}

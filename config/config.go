package config

import (
	"os"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		PublicUrl  string `default:"http://localhost:8080" env:"APP_PUBLIC_URL"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"quotation" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret             string `default:"change-me" env:"JWT_SECRET"`
		JWTExpireInSec        int64  `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
		JWTRefreshExpireInSec int64  `default:"604800" env:"JWT_REFRESH_EXPIRE_IN_SEC"`
	}
	Admin struct {
		Email     string `default:"" env:"ADMIN_EMAIL"`
		Password  string `default:"" env:"ADMIN_PASSWORD"`
		FirstName string `default:"Admin" env:"ADMIN_FIRST_NAME"`
		LastName  string `default:"" env:"ADMIN_LAST_NAME"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"quotations" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Sales struct {
		Email string `default:"" env:"SALES_EMAIL"`
	}
	Workflow struct {
		PdfMaxSizeBytes  int64 `default:"10485760" env:"PDF_MAX_SIZE_BYTES"`
		SearchDebounceMs int   `default:"350" env:"SEARCH_DEBOUNCE_MS"`
	}
	Client struct {
		BaseUrl    string `default:"http://localhost:8080/api/v1" env:"CLIENT_BASE_URL"`
		TimeoutSec int    `default:"30" env:"CLIENT_TIMEOUT_SEC"`
		Token      string `default:"" env:"CLIENT_TOKEN"`
	}
	Workers struct {
		StaleDigestEnabled   *bool `default:"true" env:"STALE_DIGEST_ENABLED"`
		StaleDigestIntervalH int   `default:"24" env:"STALE_DIGEST_INTERVAL_H"`
		StalePendingAfterH   int   `default:"48" env:"STALE_PENDING_AFTER_H"`
	}
	NotifyBot struct {
		AddrErrors string `default:"" env:"NOTIFY_BOT_ADDR_ERRORS"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	loadDotEnv()
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}

func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Warn("не удалось загрузить .env")
	}
}

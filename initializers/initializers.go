package initializers

import (
	"context"
	"quotation-backend/config"
	"quotation-backend/fiberlog"
	categoryhandler "quotation-backend/lib/catalog/category"
	producthandler "quotation-backend/lib/catalog/product"
	xlsexport "quotation-backend/lib/export/xls"
	quotationhandler "quotation-backend/lib/quotation"
	staledigestworker "quotation-backend/lib/quotation/stale-digest-worker"
	"quotation-backend/lib/rbac"
	usershandler "quotation-backend/lib/users"
	connectionhub "quotation-backend/lib/ws/hub/connection-hub"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	rbac.NewHandler()
	connectionhub.Init()
	xlsexport.NewHandler()
	usershandler.NewHandler()
	categoryhandler.NewHandler()
	producthandler.NewHandler()
	quotationhandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Сводка по котировкам без ответа
	if *config.Conf.Workers.StaleDigestEnabled {
		staledigestworker.StartWorker(ctx)
	} else {
		log.Info("сводка по котировкам в PENDIENTE отключена")
	}
}

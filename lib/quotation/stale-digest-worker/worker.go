package staledigestworker

import (
	"context"
	"fmt"
	"quotation-backend/config"
	"quotation-backend/db"
	quotationstore "quotation-backend/lib/quotation/store"
	"quotation-backend/lib/smtp"
	usersstore "quotation-backend/lib/users/store"
	baseworker "quotation-backend/lib/utils/base-worker"
	"quotation-backend/models"
	dbmodels "quotation-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// StartWorker ежедневная сводка по котировкам, застрявшим в статусе PENDIENTE
func StartWorker(ctx context.Context) {
	i := &impl{
		store:      quotationstore.NewInstance(db.DB),
		userStore:  usersstore.NewInstance(db.DB),
		mail:       smtp.Instance,
		recipient:  config.Conf.Sales.Email,
		staleAfter: time.Duration(config.Conf.Workers.StalePendingAfterH) * time.Hour,
	}
	interval := time.Duration(config.Conf.Workers.StaleDigestIntervalH) * time.Hour
	go baseworker.NewInstance("StaleQuotationDigestWorker", time.Minute, interval).Run(ctx, i.handle)
}

type impl struct {
	store      quotationstore.Provider
	userStore  usersstore.Provider
	mail       smtp.Provider
	recipient  string
	staleAfter time.Duration
}

func (i impl) handle(ctx context.Context) error {
	if i.mail == nil || !i.mail.IsConfigured() {
		log.Debug("сводка по котировкам не отправлена, не настроен smtp клиент")
		return nil
	}
	list, err := i.store.ListByStatusBefore(models.QuotationPending, time.Now().Add(-i.staleAfter))
	if err != nil {
		return errors.Wrap(err, "ошибка получения необработанных котировок")
	}
	if len(list) == 0 {
		return nil
	}
	recipients, err := i.recipients()
	if err != nil {
		return err
	}
	message := digestMessage(list, time.Now())
	for _, recipient := range recipients {
		err = i.mail.SendEMail(recipient, message, "Cotizaciones pendientes")
		if err != nil {
			log.WithError(err).WithField("recipient", recipient).Error("ошибка отправки сводки")
		}
	}
	log.
		WithField("count", len(list)).
		WithField("recipients", len(recipients)).
		Info("отправлена сводка по необработанным котировкам")
	return nil
}

// recipients ящик отдела продаж, если не задан то активные менеджеры
func (i impl) recipients() ([]string, error) {
	if i.recipient != "" {
		return []string{i.recipient}, nil
	}
	managers, err := i.userStore.ListManagers()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка менеджеров")
	}
	result := make([]string, 0, len(managers))
	for _, manager := range managers {
		if manager.Email != "" {
			result = append(result, manager.Email)
		}
	}
	return result, nil
}

func digestMessage(list []dbmodels.Quotation, now time.Time) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Cotizaciones pendientes de atención: %v\r\n\r\n", len(list)))
	for _, rec := range list {
		days := int(now.Sub(rec.CreatedAt).Hours() / 24)
		sb.WriteString(fmt.Sprintf(" - %v  %v  (%v días)\r\n", rec.Number, rec.ClientName, days))
	}
	return sb.String()
}

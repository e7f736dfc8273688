package quotationhandler

import (
	"context"
	"fmt"
	"net/http"
	"quotation-backend/db"
	quotationhistorystore "quotation-backend/lib/quotation-history/store"
	quotationstore "quotation-backend/lib/quotation/store"
	statuspolicy "quotation-backend/lib/status-policy"
	"quotation-backend/lib/utils/lock"
	apimodels "quotation-backend/models/api"
	quotationapimodels "quotation-backend/models/api/quotation"
	dbmodels "quotation-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const pdfContentType = "application/pdf"

var lockWait = 10 * time.Second

// PdfFile загруженный файл из multipart формы
type PdfFile struct {
	Name        string
	ContentType string
	Body        []byte
}

func (i impl) UpdateObservation(ctx context.Context, actor Actor, id uint, data quotationapimodels.ObservationRequest) (result quotationapimodels.ObservationView, err error) {
	logger := log.
		WithField("quotation_id", id).
		WithField("user_id", actor.ID)
	if !actor.CanManage() {
		return result, apimodels.ErrForbidden("примечание изменяет только менеджер")
	}
	observation := strings.TrimSpace(data.Observaciones)
	err = i.withQuotationLock(ctx, id, func() error {
		store := quotationstore.NewInstance(db.DB)
		rec, err := store.GetByID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения котировки")
		}
		if err = checkAccess(actor, rec); err != nil {
			return err
		}
		result.ID = id
		result.Observaciones = observation
		if observation == strings.TrimSpace(rec.Observations) {
			return nil
		}
		err = store.Update(id, map[string]interface{}{"observations": observation})
		if err != nil {
			return errors.Wrap(err, "ошибка обновления примечания")
		}
		logger.Info("обновлено примечание котировки")
		return nil
	})
	return result, err
}

func (i impl) ChangeState(ctx context.Context, actor Actor, id uint, data quotationapimodels.ChangeStateRequest) (result quotationapimodels.ChangeStateView, err error) {
	logger := log.
		WithField("quotation_id", id).
		WithField("user_id", actor.ID).
		WithField("status", data.NuevoEstado)
	if data.UsuarioID != 0 && data.UsuarioID != actor.ID {
		logger.WithField("body_user_id", data.UsuarioID).Warn("usuarioId в запросе не совпадает с токеном, используется токен")
	}
	var rec *dbmodels.Quotation
	err = i.withQuotationLock(ctx, id, func() error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			store := quotationstore.NewInstance(tx)
			rec, err = store.GetForUpdate(id)
			if err != nil {
				return errors.Wrap(err, "ошибка получения котировки")
			}
			if err = checkAccess(actor, rec); err != nil {
				return err
			}
			decision := i.policy.Evaluate(statuspolicy.Request{
				Current:           rec.Status,
				Target:            data.NuevoEstado,
				Actor:             statuspolicy.ActorFor(actor.Role),
				Observation:       data.Observacion,
				StoredObservation: rec.Observations,
			})
			if !decision.Allowed {
				return transitionRejected(decision)
			}
			err = store.Update(id, map[string]interface{}{"status": data.NuevoEstado})
			if err != nil {
				return errors.Wrap(err, "ошибка обновления статуса")
			}
			change := dbmodels.QuotationStatusChange{
				QuotationID:    id,
				PreviousStatus: rec.Status,
				NewStatus:      data.NuevoEstado,
				UserID:         &actor.ID,
				UserName:       actor.Name,
				Observation:    strings.TrimSpace(data.Observacion),
			}
			_, err = quotationhistorystore.NewInstance(tx).Create(change)
			if err != nil {
				return errors.Wrap(err, "ошибка записи истории статусов")
			}
			result = quotationapimodels.ChangeStateView{
				ID:             id,
				EstadoAnterior: rec.Status,
				EstadoNuevo:    data.NuevoEstado,
				Observacion:    change.Observation,
			}
			return nil
		})
	})
	if err != nil {
		return result, err
	}
	logger.
		WithField("previous_status", result.EstadoAnterior).
		Info("изменен статус котировки")
	i.pushStatus(*rec, data.NuevoEstado)
	return result, nil
}

func (i impl) AttachPdf(ctx context.Context, actor Actor, id uint, file PdfFile) (result quotationapimodels.PdfView, err error) {
	logger := log.
		WithField("quotation_id", id).
		WithField("user_id", actor.ID)
	if err = validatePdf(file, i.pdfMaxSize); err != nil {
		return result, err
	}
	err = i.withQuotationLock(ctx, id, func() error {
		store := quotationstore.NewInstance(db.DB)
		rec, err := store.GetByID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения котировки")
		}
		if err = checkAccess(actor, rec); err != nil {
			return err
		}
		if !rec.Status.AllowsPdf() {
			return apimodels.NewCodedError(http.StatusConflict, apimodels.CodePdfNotAllowed,
				fmt.Sprintf("pdf нельзя прикрепить в статусе %v", rec.Status.ToHuman()))
		}
		objectName, err := i.fileStorage.UploadQuotationPdf(ctx, id, file.Name, file.Body)
		if err != nil {
			return err
		}
		result.Archivo = pdfLink(i.publicUrl, id)
		err = store.Update(id, map[string]interface{}{
			"pdf_link":   result.Archivo,
			"pdf_object": objectName,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения ссылки на pdf")
		}
		if rec.PdfObject != "" && rec.PdfObject != objectName {
			if err := i.fileStorage.DeleteFile(ctx, rec.PdfObject); err != nil {
				logger.WithError(err).Warn("не удалось удалить прежний pdf")
			}
		}
		logger.WithField("object_name", objectName).Info("прикреплен pdf котировки")
		return nil
	})
	return result, err
}

func (i impl) GetPdf(ctx context.Context, actor Actor, id uint) (fileName string, body []byte, err error) {
	rec, err := i.getAccessible(actor, id)
	if err != nil {
		return "", nil, err
	}
	if rec.PdfObject == "" {
		return "", nil, apimodels.ErrNotFound("pdf котировки не загружен")
	}
	body, err = i.fileStorage.GetFile(ctx, rec.PdfObject)
	if err != nil {
		return "", nil, err
	}
	return rec.Number + ".pdf", body, nil
}

func (i impl) withQuotationLock(ctx context.Context, id uint, safeCode func() error) error {
	success, err := lock.WithDelay(ctx, lock.QuotationKey(id), lockWait, safeCode)
	if err != nil {
		return err
	}
	if !success {
		return apimodels.NewCodedError(http.StatusConflict, apimodels.CodeBusy, "котировка изменяется другим запросом, повторите позже")
	}
	return nil
}

func transitionRejected(decision statuspolicy.Decision) error {
	return apimodels.NewCodedError(http.StatusUnprocessableEntity, apimodels.CodeTransitionRejected, decision.Err().Error())
}

func validatePdf(file PdfFile, maxSize int64) error {
	if len(file.Body) == 0 {
		return apimodels.ErrValidation("файл пустой")
	}
	if maxSize > 0 && int64(len(file.Body)) > maxSize {
		return apimodels.ErrValidation(fmt.Sprintf("размер файла превышает %v МБ", maxSize/(1024*1024)))
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(file.ContentType, ";")[0]))
	if contentType != pdfContentType || http.DetectContentType(file.Body) != pdfContentType {
		return apimodels.ErrValidation("допускаются только файлы pdf")
	}
	return nil
}

func pdfLink(publicUrl string, id uint) string {
	return fmt.Sprintf("%v/api/v1/cotizacion/%v/pdf", strings.TrimRight(publicUrl, "/"), id)
}


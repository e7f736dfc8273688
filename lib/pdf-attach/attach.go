// Package pdfattach проверка и загрузка pdf котировки с последующим
// переводом в статус ENVIADA
package pdfattach

import (
	"context"
	"quotation-backend/lib/session"
	"quotation-backend/models"
	quotationapimodels "quotation-backend/models/api/quotation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	MaxSize     = 10 * 1024 * 1024
	ContentType = "application/pdf"
	UploadNote  = "Se ha subido el PDF de la cotización."
)

var (
	ErrFileTooLarge          = errors.New("файл больше 10 МБ")
	ErrNotPDF                = errors.New("файл должен быть в формате pdf")
	ErrTransitionAfterUpload = errors.New("pdf загружен, но статус котировки не изменен")
)

type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        []byte
}

func NewFile(name, contentType string, body []byte) File {
	return File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Body:        body,
	}
}

// Validate проверка до обращения к бэкенду
func Validate(file File) error {
	if file.Size > MaxSize {
		return ErrFileTooLarge
	}
	if file.ContentType != ContentType {
		return ErrNotPDF
	}
	return nil
}

type Uploader interface {
	UploadPdf(ctx context.Context, sess session.Session, id uint, fileName string, file []byte) (quotationapimodels.PdfView, error)
}

type Advancer interface {
	Advance(ctx context.Context, sess session.Session, rec quotationapimodels.FullView, target models.QuotationStatus, note string) (bool, error)
}

// TransitionError статус не изменен после успешной загрузки
type TransitionError struct {
	Reference string
	Cause     error
}

func (e *TransitionError) Error() string {
	return ErrTransitionAfterUpload.Error() + ": " + e.Cause.Error()
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrTransitionAfterUpload
}

func (e *TransitionError) Unwrap() error {
	return e.Cause
}

type Result struct {
	Reference string
	Advanced  bool
}

type Flow struct {
	uploader Uploader
	advancer Advancer
}

func NewFlow(uploader Uploader, advancer Advancer) *Flow {
	return &Flow{
		uploader: uploader,
		advancer: advancer,
	}
}

// Attach загрузка и переход в ENVIADA. Ссылка сохраняется в rec сразу после загрузки,
// ошибка перехода ее не сбрасывает и не повторяется.
func (f *Flow) Attach(ctx context.Context, sess session.Session, rec *quotationapimodels.FullView, file File) (result Result, err error) {
	if err = Validate(file); err != nil {
		return result, err
	}
	logger := log.
		WithField("quotation_id", rec.ID).
		WithField("file_name", file.Name)

	resp, err := f.uploader.UploadPdf(ctx, sess, rec.ID, file.Name, file.Body)
	if err != nil {
		return result, errors.Wrap(err, "ошибка загрузки pdf")
	}
	rec.CotizacionEnlace = resp.Archivo
	result.Reference = resp.Archivo

	result.Advanced, err = f.advancer.Advance(ctx, sess, *rec, models.QuotationSent, UploadNote)
	if err != nil {
		logger.WithError(err).Error(ErrTransitionAfterUpload.Error())
		return result, &TransitionError{Reference: resp.Archivo, Cause: err}
	}
	if result.Advanced {
		rec.Estado = models.QuotationSent
	}
	logger.WithField("advanced", result.Advanced).Info("pdf котировки прикреплен")
	return result, nil
}

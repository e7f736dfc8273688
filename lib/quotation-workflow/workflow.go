// Package quotationworkflow последовательность вызовов бэкенда при подтверждении
// изменений котировки: сначала примечание, затем статус.
package quotationworkflow

import (
	"context"
	"quotation-backend/lib/session"
	statuspolicy "quotation-backend/lib/status-policy"
	"quotation-backend/models"
	quotationapimodels "quotation-backend/models/api/quotation"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	MsgNothingToDo       = "No hay cambios para guardar."
	MsgUpdated           = "Cotización actualizada correctamente."
	MsgAccepted          = "Cotización aceptada correctamente."
	MsgRejected          = "Cotización rechazada correctamente."
	MsgRespondNotAllowed = "Solo se puede responder a una cotización enviada."
)

// Client вызовы бэкенда, которые нужны координатору
type Client interface {
	UpdateObservation(ctx context.Context, sess session.Session, id uint, observation string) (quotationapimodels.ObservationView, error)
	ChangeState(ctx context.Context, sess session.Session, id uint, req quotationapimodels.ChangeStateRequest) (quotationapimodels.ChangeStateView, error)
}

// Outcome что было выполнено, при Refetch котировку и список нужно перечитать
type Outcome struct {
	ObservationUpdated bool
	StatusChanged      bool
	Status             models.QuotationStatus
	Observation        string
}

func (o Outcome) Refetch() bool {
	return o.ObservationUpdated || o.StatusChanged
}

type Coordinator struct {
	client   Client
	policy   *statuspolicy.Policy
	notifier Notifier
}

func NewCoordinator(client Client, policy *statuspolicy.Policy, notifier Notifier) *Coordinator {
	if policy == nil {
		policy = statuspolicy.NewDefault()
	}
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Coordinator{
		client:   client,
		policy:   policy,
		notifier: notifier,
	}
}

// Confirm подтверждение формы котировки. Примечание записывается, если оно непустое
// и отличается от сохраненного; статус меняется, если кандидат непустой и отличается.
// Ошибка смены статуса не откатывает записанное примечание.
func (c *Coordinator) Confirm(ctx context.Context, sess session.Session, rec quotationapimodels.FullView, candidateObservation string, candidateStatus models.QuotationStatus) (outcome Outcome, err error) {
	logger := log.
		WithField("quotation_id", rec.ID).
		WithField("user_id", sess.UserID)
	outcome = Outcome{Status: rec.Estado, Observation: rec.Observaciones}

	actor := statuspolicy.ActorFor(sess.Role)
	observationChanged := statuspolicy.ObservationChanged(candidateObservation, rec.Observaciones)
	changeStatus := candidateStatus != "" && candidateStatus != rec.Estado
	if !observationChanged && !changeStatus {
		c.notifier.Notify(NoticeInfo, MsgNothingToDo)
		return outcome, nil
	}
	// примечание пишет только персонал, клиент передает комментарий вместе со сменой статуса
	if actor != statuspolicy.ActorStaff && !changeStatus {
		return outcome, c.fail(logger, statuspolicy.ErrNotAllowed)
	}

	decision := statuspolicy.Decision{
		WriteObservation: observationChanged,
		Observation:      strings.TrimSpace(candidateObservation),
	}
	if changeStatus {
		decision = c.policy.Evaluate(statuspolicy.Request{
			Current:           rec.Estado,
			Target:            candidateStatus,
			Actor:             actor,
			Observation:       candidateObservation,
			StoredObservation: rec.Observaciones,
		})
		if !decision.Allowed {
			return outcome, c.fail(logger, decision.Err())
		}
	}

	if decision.WriteObservation {
		if _, err = c.client.UpdateObservation(ctx, sess, rec.ID, decision.Observation); err != nil {
			return outcome, c.fail(logger, errors.Wrap(err, "ошибка обновления примечания"))
		}
		outcome.ObservationUpdated = true
		outcome.Observation = decision.Observation
	}

	if changeStatus {
		_, err = c.client.ChangeState(ctx, sess, rec.ID, quotationapimodels.ChangeStateRequest{
			NuevoEstado: candidateStatus,
			Observacion: decision.Observation,
			UsuarioID:   sess.UserID,
		})
		if err != nil {
			return outcome, c.fail(logger, errors.Wrap(err, "ошибка смены статуса"))
		}
		outcome.StatusChanged = true
		outcome.Status = candidateStatus
	}

	logger.
		WithField("observation_updated", outcome.ObservationUpdated).
		WithField("status", outcome.Status).
		Debug("котировка подтверждена")
	c.notifier.Notify(NoticeSuccess, MsgUpdated)
	return outcome, nil
}

// Respond ответ клиента на отправленную котировку, комментарий может быть пустым
func (c *Coordinator) Respond(ctx context.Context, sess session.Session, rec quotationapimodels.FullView, accept bool, comment string) (outcome Outcome, err error) {
	logger := log.
		WithField("quotation_id", rec.ID).
		WithField("user_id", sess.UserID)
	outcome = Outcome{Status: rec.Estado, Observation: rec.Observaciones}

	target, msg := models.QuotationRejected, MsgRejected
	if accept {
		target, msg = models.QuotationAccepted, MsgAccepted
	}
	decision := c.policy.Evaluate(statuspolicy.Request{
		Current:     rec.Estado,
		Target:      target,
		Actor:       statuspolicy.ActorCustomer,
		Observation: comment,
	})
	if !decision.Allowed {
		if errors.Is(decision.Err(), statuspolicy.ErrRespondUnavailable) {
			logger.Debug(MsgRespondNotAllowed)
			c.notifier.Notify(NoticeError, MsgRespondNotAllowed)
			return outcome, decision.Err()
		}
		return outcome, c.fail(logger, decision.Err())
	}

	_, err = c.client.ChangeState(ctx, sess, rec.ID, quotationapimodels.ChangeStateRequest{
		NuevoEstado: target,
		Observacion: decision.Observation,
		UsuarioID:   sess.UserID,
	})
	if err != nil {
		return outcome, c.fail(logger, errors.Wrap(err, "ошибка ответа на котировку"))
	}
	outcome.StatusChanged = true
	outcome.Status = target
	c.notifier.Notify(NoticeSuccess, msg)
	return outcome, nil
}

// Advance смена статуса без сообщений пользователю. Переход в текущий статус
// пропускается без ошибки, advanced=false.
func (c *Coordinator) Advance(ctx context.Context, sess session.Session, rec quotationapimodels.FullView, target models.QuotationStatus, note string) (advanced bool, err error) {
	decision := c.policy.Evaluate(statuspolicy.Request{
		Current:           rec.Estado,
		Target:            target,
		Actor:             statuspolicy.ActorFor(sess.Role),
		StoredObservation: rec.Observaciones,
	})
	if !decision.Allowed {
		if decision.Reason == statuspolicy.ReasonNoop {
			return false, nil
		}
		return false, decision.Err()
	}
	_, err = c.client.ChangeState(ctx, sess, rec.ID, quotationapimodels.ChangeStateRequest{
		NuevoEstado: target,
		Observacion: strings.TrimSpace(note),
		UsuarioID:   sess.UserID,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Coordinator) fail(logger *log.Entry, err error) error {
	logger.WithError(err).Warn("подтверждение котировки не выполнено")
	c.notifier.Notify(NoticeError, errors.Cause(err).Error())
	return err
}

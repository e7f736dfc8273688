// Package statuspolicy решает, допустим ли переход котировки между статусами
// для конкретной роли и нужно ли при этом записывать примечание.
package statuspolicy

import (
	"quotation-backend/models"
	"strings"

	"github.com/pkg/errors"
)

type Actor string

const (
	ActorStaff    Actor = "STAFF"
	ActorCustomer Actor = "CUSTOMER"
)

// ActorFor роль в терминах политики
func ActorFor(role models.UserRole) Actor {
	if role.CanManage() {
		return ActorStaff
	}
	return ActorCustomer
}

type Reason string

const (
	ReasonNoop               Reason = "no-op"
	ReasonUnknownStatus      Reason = "unknown-status"
	ReasonNotAllowed         Reason = "not-allowed"
	ReasonRespondUnavailable Reason = "respond-unavailable"
)

var (
	ErrNoop               = errors.New("статус не изменился")
	ErrUnknownStatus      = errors.New("неизвестный статус")
	ErrNotAllowed         = errors.New("переход между статусами недопустим")
	ErrRespondUnavailable = errors.New("ответ на котировку недоступен в текущем статусе")
)

var reasonErrors = map[Reason]error{
	ReasonNoop:               ErrNoop,
	ReasonUnknownStatus:      ErrUnknownStatus,
	ReasonNotAllowed:         ErrNotAllowed,
	ReasonRespondUnavailable: ErrRespondUnavailable,
}

type Request struct {
	Current           models.QuotationStatus
	Target            models.QuotationStatus
	Actor             Actor
	Observation       string // примечание из формы
	StoredObservation string // сохраненное примечание
}

type Decision struct {
	Allowed bool
	Reason  Reason
	// WriteObservation примечание нужно записать до смены статуса
	WriteObservation bool
	// Observation нормализованное примечание, передается вместе со сменой статуса
	Observation string
}

// Err ошибка для отклоненного решения, nil если переход разрешен
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if err, ok := reasonErrors[d.Reason]; ok {
		return err
	}
	return ErrNotAllowed
}

// Table разрешенные переходы персонала: текущий -> целевые
type Table map[models.QuotationStatus][]models.QuotationStatus

type Policy struct {
	staff map[models.QuotationStatus]map[models.QuotationStatus]bool
}

// NewDefault персонал может выставить любой статус
func NewDefault() *Policy {
	table := Table{}
	for _, from := range models.QuotationStatuses {
		table[from] = models.QuotationStatuses
	}
	return NewPolicy(table)
}

func NewPolicy(table Table) *Policy {
	staff := make(map[models.QuotationStatus]map[models.QuotationStatus]bool, len(table))
	for from, targets := range table {
		allowed := make(map[models.QuotationStatus]bool, len(targets))
		for _, to := range targets {
			allowed[to] = true
		}
		staff[from] = allowed
	}
	return &Policy{staff: staff}
}

func (p *Policy) Evaluate(req Request) Decision {
	if !req.Target.IsValid() {
		return Decision{Reason: ReasonUnknownStatus}
	}
	if req.Target == req.Current {
		return Decision{Reason: ReasonNoop}
	}
	switch req.Actor {
	case ActorCustomer:
		if !CanRespond(req.Current) {
			return Decision{Reason: ReasonRespondUnavailable}
		}
		if !req.Target.IsCustomerResponse() {
			return Decision{Reason: ReasonNotAllowed}
		}
		// комментарий клиента может быть пустым, примечание персонала он не меняет
		return Decision{
			Allowed:     true,
			Observation: strings.TrimSpace(req.Observation),
		}
	case ActorStaff:
		if !p.staff[req.Current][req.Target] {
			return Decision{Reason: ReasonNotAllowed}
		}
		decision := Decision{
			Allowed:          true,
			WriteObservation: ObservationChanged(req.Observation, req.StoredObservation),
			Observation:      strings.TrimSpace(req.StoredObservation),
		}
		if decision.WriteObservation {
			decision.Observation = strings.TrimSpace(req.Observation)
		}
		return decision
	}
	return Decision{Reason: ReasonNotAllowed}
}

// CanRespond клиент может ответить только на отправленную котировку
func CanRespond(current models.QuotationStatus) bool {
	return current == models.QuotationSent
}

// ObservationChanged пустое примечание означает "без изменений"
func ObservationChanged(candidate, stored string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false
	}
	return candidate != strings.TrimSpace(stored)
}

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ReservationStatus is the lifecycle of a common-area reservation.
type ReservationStatus string

const (
	ReservationPendente   ReservationStatus = "pendente"
	ReservationConfirmada ReservationStatus = "confirmada"
	ReservationCancelada  ReservationStatus = "cancelada"
)

// Reservation books a common area for a unit on a date.
//
// The unique index on (matricula, area, date) makes double bookings fail
// at the storage layer; the database callback translates the violation.
type Reservation struct {
	DefaultModel
	Matricula string            `json:"matricula" gorm:"index;uniqueIndex:reservation_area_date" example:"12345678100"`
	Area      string            `json:"area" gorm:"uniqueIndex:reservation_area_date" example:"Salão de festas"`
	Date      time.Time         `json:"date" gorm:"uniqueIndex:reservation_area_date" example:"2024-07-20T00:00:00Z"`
	Unidade   string            `json:"unidade" example:"Apto 42"`
	Status    ReservationStatus `json:"status" example:"pendente"`
}

// BeforeSave trims strings, truncates the date to midnight UTC and
// defaults the status to pending.
func (r *Reservation) BeforeSave(_ *gorm.DB) error {
	r.Area = strings.TrimSpace(r.Area)
	r.Unidade = strings.TrimSpace(r.Unidade)

	year, month, day := r.Date.In(time.UTC).Date()
	r.Date = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	if r.Status == "" {
		r.Status = ReservationPendente
	}

	return nil
}

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Announcement is a notice the manager publishes to residents.
type Announcement struct {
	DefaultModel
	Matricula   string     `json:"matricula" gorm:"index" example:"12345678100"`
	Titulo      string     `json:"titulo" example:"Assembleia geral"`
	Mensagem    string     `json:"mensagem" example:"A assembleia acontece dia 15 às 19h no salão de festas."`
	Autor       string     `json:"autor" example:"sindico@example.com"`
	PublishedAt *time.Time `json:"publishedAt" example:"2024-07-01T12:00:00Z"` // Set once the announcement was emailed to residents
}

// BeforeSave trims whitespace.
func (a *Announcement) BeforeSave(_ *gorm.DB) error {
	a.Titulo = strings.TrimSpace(a.Titulo)
	a.Mensagem = strings.TrimSpace(a.Mensagem)

	return nil
}

// ResidentEmails returns the email addresses of all active residents of
// the announcement's condominium, for the email fan-out.
func (a Announcement) ResidentEmails(db *gorm.DB) ([]string, error) {
	var emails []string
	err := db.Model(&Resident{}).
		Where("matricula = ? AND active = ? AND email != ''", a.Matricula, true).
		Pluck("email", &emails).Error

	return emails, err
}

package models

import (
	"strings"

	"gorm.io/gorm"
)

// Document is the metadata of a file kept in the external object storage.
// The backend never stores file contents.
type Document struct {
	DefaultModel
	Matricula string `json:"matricula" gorm:"index" example:"12345678100"`
	Nome      string `json:"nome" example:"ata-assembleia-2024-07.pdf"`
	Tipo      string `json:"tipo" example:"ata"` // Free-form document kind (ata, regimento, boleto, ...)
	URL       string `json:"url" example:"https://storage.example.com/docs/ata-assembleia-2024-07.pdf"`
}

// BeforeSave trims whitespace.
func (d *Document) BeforeSave(_ *gorm.DB) error {
	d.Nome = strings.TrimSpace(d.Nome)
	d.Tipo = strings.TrimSpace(d.Tipo)
	d.URL = strings.TrimSpace(d.URL)

	return nil
}

package v1

import (
	cf_uuid "github.com/condofacil/backend/internal/uuid"
)

type URIID struct {
	ID cf_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIMatricula struct {
	Matricula string `uri:"matricula" binding:"required" example:"12345678100"` // Matricula of the condominium
}

type URICodigo struct {
	Codigo string `uri:"codigo" binding:"required" example:"BASICO"` // Code of the plan
}

type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}

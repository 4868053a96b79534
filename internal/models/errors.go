package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Constraint violations translated by the database callbacks.
var (
	ErrMatriculaNotUnique  = errors.New("a condominium with this matricula is already registered")
	ErrPlanCodeNotUnique   = errors.New("a plan with this code already exists")
	ErrUserEmailNotUnique  = errors.New("a user with this email already exists")
	ErrReservationConflict = errors.New("this common area is already reserved for the requested date")
	ErrPlanInUse           = errors.New("the plan cannot be deleted because condominiums are still subscribed to it")
)

// Validation errors for condominium records.
var (
	ErrMatriculaImmutable     = errors.New("the postal code and building number cannot be changed after registration")
	ErrMatriculaFieldsMissing = errors.New("the postal code and building number are required to register a condominium")
	ErrPasswordConfirmation   = errors.New("the password and its confirmation do not match")
	ErrPixKeyInvalid          = errors.New("the PIX key must be a CPF, CNPJ, email address or phone number")
	ErrPlanUnknown            = errors.New("the selected plan does not exist")
)

// Validation errors for the financial ledger.
var (
	ErrPlanCapacityExceeded        = errors.New("the plan does not allow enough residents")
	ErrPaymentDateInFuture         = errors.New("the payment date must not be in the future")
	ErrPaymentDateBeforeAdjustment = errors.New("the payment date must not precede the most recent balance adjustment")
	ErrCategoryInvalid             = errors.New("the specified category is invalid")
)

package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sjperalta/debtbook-api/internal/repository"
)

// Common service errors
var (
	ErrNotFound        = errors.New("registro no encontrado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrInvalidState    = errors.New("transición de estado inválida")
	ErrDuplicate       = errors.New("registro duplicado")
	ErrFeatureDisabled = errors.New("función deshabilitada")
	ErrInvalidInput    = errors.New("solicitud inválida")
)

// translate maps repository errors onto service errors, keeping the cause
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrDuplicate
	case errors.Is(err, repository.ErrStatusChanged):
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	default:
		return err
	}
}

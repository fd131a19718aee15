package repository

import (
	"time"

	"github.com/Camilo196/Vendly/internal/domain/entity"
)

// CommissionFilter filtros para listar comisiones.
type CommissionFilter struct {
	EmployeeID string
	Status     string
	Type       string
	StartDate  *time.Time
	EndDate    *time.Time
}

// CommissionRepository puerto de persistencia para Commission.
type CommissionRepository interface {
	Create(commission *entity.Commission) error
	GetByID(userID, id string) (*entity.Commission, error)
	Update(commission *entity.Commission) error
	List(userID string, filter CommissionFilter) ([]*entity.Commission, error)
	// ListByReferences lista comisiones cuyo ReferenceID esté en refIDs y cuyo
	// estado esté en statuses (vacío = todos). Usado por reportes.
	ListByReferences(userID string, refIDs []string, statuses []string) ([]*entity.Commission, error)
	// DeleteByReference borra las comisiones de un tipo que referencian a un
	// origen (usado al editar/eliminar ventas, que se recrean bajo reglas vigentes).
	DeleteByReference(userID, referenceID, commissionType string) error
	// CancelByReference marca como cancelled las comisiones de un origen
	// eliminado; los registros se conservan para auditoría.
	CancelByReference(userID, referenceID, commissionType string) (int64, error)
	// PayBatch marca como pagadas las comisiones indicadas que estén en
	// pending o approved; las demás se omiten sin error. Devuelve cuántas modificó.
	PayBatch(userID string, ids []string, notes string, paidAt time.Time) (int64, error)
}

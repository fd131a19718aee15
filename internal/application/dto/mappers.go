package dto

import "github.com/Camilo196/Vendly/internal/domain/entity"

// Constructores de respuestas a partir de entidades de dominio.
// Centralizados para que todos los casos de uso serialicen igual.

// NewProductResponse mapea un producto a su respuesta.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		ProductType:    p.ProductType,
		CommissionRate: p.CommissionRate,
		Stock:          p.Stock,
		AverageCost:    p.AverageCost,
		SuggestedPrice: p.SuggestedPrice,
		ProfitMargin:   p.ProfitMargin,
		TotalPurchased: p.TotalPurchased,
		TotalSold:      p.TotalSold,
		Category:       p.Category,
		Brand:          p.Brand,
		Description:    p.Description,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// NewPurchaseResponse mapea una compra a su respuesta.
func NewPurchaseResponse(p *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:           p.ID,
		ProductID:    p.ProductID,
		ProductName:  p.ProductName,
		ProductType:  p.ProductType,
		Quantity:     p.Quantity,
		UnitCost:     p.UnitCost,
		TotalCost:    p.TotalCost,
		Supplier:     p.Supplier,
		Invoice:      p.Invoice,
		Notes:        p.Notes,
		PurchaseDate: p.PurchaseDate,
		CreatedAt:    p.CreatedAt,
	}
}

// NewSaleResponse mapea una venta a su respuesta.
func NewSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		Quantity:      s.Quantity,
		UnitPrice:     s.UnitPrice,
		UnitCost:      s.UnitCost,
		TotalSale:     s.TotalSale,
		TotalCost:     s.TotalCost,
		Profit:        s.Profit,
		EmployeeID:    s.EmployeeID,
		Customer:      s.Customer,
		PaymentMethod: s.PaymentMethod,
		Notes:         s.Notes,
		SaleDate:      s.SaleDate,
		CreatedAt:     s.CreatedAt,
	}
}

// NewEmployeeResponse mapea un empleado a su respuesta.
func NewEmployeeResponse(e *entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       e.ID,
		Name:     e.Name,
		Position: e.Position,
		Phone:    e.Phone,
		Email:    e.Email,
		HireDate: e.HireDate,
		Notes:    e.Notes,
		CommissionConfig: CommissionConfigDTO{
			SalesEnabled:    e.CommissionConfig.SalesEnabled,
			SalesRate:       e.CommissionConfig.SalesRate,
			ServicesEnabled: e.CommissionConfig.ServicesEnabled,
			ServicesRate:    e.CommissionConfig.ServicesRate,
		},
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// NewCommissionResponse mapea una comisión a su respuesta. employeeName puede
// venir vacío si el caller no lo resolvió.
func NewCommissionResponse(c *entity.Commission, employeeName string) CommissionResponse {
	return CommissionResponse{
		ID:             c.ID,
		EmployeeID:     c.EmployeeID,
		EmployeeName:   employeeName,
		CommissionType: c.Type,
		ReferenceID:    c.ReferenceID,
		Description:    c.Description,
		BaseAmount:     c.BaseAmount,
		Rate:           c.CommissionRate,
		Amount:         c.CommissionAmount,
		Status:         c.Status,
		Date:           c.Date,
		Notes:          c.Notes,
		ApprovedDate:   c.ApprovedDate,
		PaidDate:       c.PaidDate,
		CreatedAt:      c.CreatedAt,
	}
}

// NewServiceResponse mapea un servicio técnico a su respuesta.
func NewServiceResponse(s *entity.TechnicalService) ServiceResponse {
	parts := make([]PartUsedResponse, 0, len(s.PartsUsed))
	for _, pu := range s.PartsUsed {
		parts = append(parts, PartUsedResponse{
			ProductID:   pu.ProductID,
			ProductName: pu.ProductName,
			Quantity:    pu.Quantity,
			UnitCost:    pu.UnitCost,
		})
	}
	return ServiceResponse{
		ID: s.ID,
		Customer: ServiceCustomerDTO{
			Name:    s.Customer.Name,
			Phone:   s.Customer.Phone,
			Email:   s.Customer.Email,
			Address: s.Customer.Address,
		},
		Device: ServiceDeviceDTO{
			Type:         s.Device.Type,
			Brand:        s.Device.Brand,
			Model:        s.Device.Model,
			SerialNumber: s.Device.SerialNumber,
		},
		ProblemDescription:       s.ProblemDescription,
		Diagnosis:                s.Diagnosis,
		Solution:                 s.Solution,
		Status:                   s.Status,
		Priority:                 s.Priority,
		LaborCost:                s.LaborCost,
		PartsCost:                s.PartsCost,
		PartsPrice:               s.PartsPrice,
		TotalCost:                s.TotalCost,
		TechnicianID:             s.TechnicianID,
		Technician:               s.Technician,
		TechnicianCommissionRate: s.TechnicianCommissionRate,
		TechnicianCommission:     s.TechnicianCommission,
		CommissionApproved:       s.CommissionApproved,
		CommissionID:             s.CommissionID,
		PartsUsed:                parts,
		EntryDate:                s.EntryDate,
		EstimatedCompletionDate:  s.EstimatedCompletionDate,
		CompletionDate:           s.CompletionDate,
		DeliveryDate:             s.DeliveryDate,
		PaymentMethod:            s.PaymentMethod,
		PaymentStatus:            s.PaymentStatus,
		Notes:                    s.Notes,
		CreatedAt:                s.CreatedAt,
		UpdatedAt:                s.UpdatedAt,
	}
}

// NewUserResponse mapea un usuario a su respuesta pública.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		BusinessName: u.BusinessName,
		Email:        u.Email,
		Role:         u.Role,
	}
}

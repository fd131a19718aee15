package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/repository"
)

// Products devuelve el adaptador de productos.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s} }

// Purchases devuelve el adaptador de compras.
func (s *Store) Purchases() repository.PurchaseRepository { return &purchaseRepo{s} }

// Sales devuelve el adaptador de ventas.
func (s *Store) Sales() repository.SaleRepository { return &saleRepo{s} }

// Employees devuelve el adaptador de empleados.
func (s *Store) Employees() repository.EmployeeRepository { return &employeeRepo{s} }

// Commissions devuelve el adaptador de comisiones.
func (s *Store) Commissions() repository.CommissionRepository { return &commissionRepo{s} }

// Services devuelve el adaptador de servicios técnicos.
func (s *Store) Services() repository.TechnicalServiceRepository { return &serviceRepo{s} }

// Users devuelve el adaptador de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

type productRepo struct{ s *Store }

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(product *entity.Product) error {
	r.s.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *productRepo) GetByID(userID, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetForUpdate equivale a GetByID: el Store serializa con su mutex.
func (r *productRepo) GetForUpdate(userID, id string) (*entity.Product, error) {
	return r.GetByID(userID, id)
}

func (r *productRepo) FindByNameAndType(userID, name, productType string) (*entity.Product, error) {
	folded := fold(name)
	for _, p := range r.s.products {
		if p.UserID == userID && p.ProductType == productType && fold(p.Name) == folded {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *productRepo) FindByName(userID, name string) (*entity.Product, error) {
	folded := fold(name)
	for _, p := range r.s.products {
		if p.UserID == userID && fold(p.Name) == folded {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(product *entity.Product) error {
	r.s.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *productRepo) ListActive(userID string) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.UserID == userID && p.IsActive {
			list = append(list, cloneProduct(p))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *productRepo) ReactivateAll(userID string) (int64, error) {
	var n int64
	for _, p := range r.s.products {
		if p.UserID == userID && !p.IsActive {
			p.IsActive = true
			n++
		}
	}
	return n, nil
}

type purchaseRepo struct{ s *Store }

var _ repository.PurchaseRepository = (*purchaseRepo)(nil)

func (r *purchaseRepo) Create(purchase *entity.Purchase) error {
	r.s.purchases[purchase.ID] = clonePurchase(purchase)
	return nil
}

func (r *purchaseRepo) GetByID(userID, id string) (*entity.Purchase, error) {
	p, ok := r.s.purchases[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return clonePurchase(p), nil
}

func (r *purchaseRepo) Update(purchase *entity.Purchase) error {
	r.s.purchases[purchase.ID] = clonePurchase(purchase)
	return nil
}

func (r *purchaseRepo) Delete(userID, id string) error {
	if p, ok := r.s.purchases[id]; ok && p.UserID == userID {
		delete(r.s.purchases, id)
	}
	return nil
}

func (r *purchaseRepo) List(userID string, filter repository.PurchaseFilter) ([]*entity.Purchase, error) {
	var list []*entity.Purchase
	for _, p := range r.s.purchases {
		if p.UserID != userID {
			continue
		}
		if !inRange(p.PurchaseDate, filter.StartDate, filter.EndDate) {
			continue
		}
		if filter.ProductID != "" && p.ProductID != filter.ProductID {
			continue
		}
		list = append(list, clonePurchase(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PurchaseDate.After(list[j].PurchaseDate) })
	return list, nil
}

type saleRepo struct{ s *Store }

var _ repository.SaleRepository = (*saleRepo)(nil)

func (r *saleRepo) Create(sale *entity.Sale) error {
	r.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

func (r *saleRepo) GetByID(userID, id string) (*entity.Sale, error) {
	sl, ok := r.s.sales[id]
	if !ok || sl.UserID != userID {
		return nil, nil
	}
	return cloneSale(sl), nil
}

func (r *saleRepo) Update(sale *entity.Sale) error {
	r.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

func (r *saleRepo) Delete(userID, id string) error {
	if sl, ok := r.s.sales[id]; ok && sl.UserID == userID {
		delete(r.s.sales, id)
	}
	return nil
}

func (r *saleRepo) List(userID string, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for _, sl := range r.s.sales {
		if sl.UserID != userID {
			continue
		}
		if !inRange(sl.SaleDate, filter.StartDate, filter.EndDate) {
			continue
		}
		if filter.ProductID != "" && sl.ProductID != filter.ProductID {
			continue
		}
		list = append(list, cloneSale(sl))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SaleDate.After(list[j].SaleDate) })
	return list, nil
}

type employeeRepo struct{ s *Store }

var _ repository.EmployeeRepository = (*employeeRepo)(nil)

func (r *employeeRepo) Create(employee *entity.Employee) error {
	r.s.employees[employee.ID] = cloneEmployee(employee)
	return nil
}

func (r *employeeRepo) GetByID(userID, id string) (*entity.Employee, error) {
	e, ok := r.s.employees[id]
	if !ok || e.UserID != userID {
		return nil, nil
	}
	return cloneEmployee(e), nil
}

func (r *employeeRepo) GetActiveByID(userID, id string) (*entity.Employee, error) {
	e, err := r.GetByID(userID, id)
	if err != nil || e == nil || !e.IsActive {
		return nil, err
	}
	return e, nil
}

func (r *employeeRepo) Update(employee *entity.Employee) error {
	r.s.employees[employee.ID] = cloneEmployee(employee)
	return nil
}

func (r *employeeRepo) List(userID string, filter repository.EmployeeFilter) ([]*entity.Employee, error) {
	var list []*entity.Employee
	for _, e := range r.s.employees {
		if e.UserID != userID {
			continue
		}
		if filter.IsActive != nil && e.IsActive != *filter.IsActive {
			continue
		}
		if filter.Position != "" && e.Position != filter.Position {
			continue
		}
		list = append(list, cloneEmployee(e))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

type commissionRepo struct{ s *Store }

var _ repository.CommissionRepository = (*commissionRepo)(nil)

func (r *commissionRepo) Create(commission *entity.Commission) error {
	r.s.commissions[commission.ID] = cloneCommission(commission)
	return nil
}

func (r *commissionRepo) GetByID(userID, id string) (*entity.Commission, error) {
	c, ok := r.s.commissions[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	return cloneCommission(c), nil
}

func (r *commissionRepo) Update(commission *entity.Commission) error {
	r.s.commissions[commission.ID] = cloneCommission(commission)
	return nil
}

func (r *commissionRepo) List(userID string, filter repository.CommissionFilter) ([]*entity.Commission, error) {
	var list []*entity.Commission
	for _, c := range r.s.commissions {
		if c.UserID != userID {
			continue
		}
		if filter.EmployeeID != "" && c.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		if !inRange(c.Date, filter.StartDate, filter.EndDate) {
			continue
		}
		list = append(list, cloneCommission(c))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, nil
}

func (r *commissionRepo) ListByReferences(userID string, refIDs []string, statuses []string) ([]*entity.Commission, error) {
	refs := make(map[string]bool, len(refIDs))
	for _, id := range refIDs {
		refs[id] = true
	}
	var list []*entity.Commission
	for _, c := range r.s.commissions {
		if c.UserID != userID || !refs[c.ReferenceID] {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, st := range statuses {
				if c.Status == st {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		list = append(list, cloneCommission(c))
	}
	return list, nil
}

func (r *commissionRepo) DeleteByReference(userID, referenceID, commissionType string) error {
	for id, c := range r.s.commissions {
		if c.UserID == userID && c.ReferenceID == referenceID && c.Type == commissionType {
			delete(r.s.commissions, id)
		}
	}
	return nil
}

func (r *commissionRepo) CancelByReference(userID, referenceID, commissionType string) (int64, error) {
	var n int64
	for _, c := range r.s.commissions {
		if c.UserID == userID && c.ReferenceID == referenceID && c.Type == commissionType &&
			c.Status != entity.CommissionCancelled {
			c.Status = entity.CommissionCancelled
			c.UpdatedAt = time.Now()
			n++
		}
	}
	return n, nil
}

func (r *commissionRepo) PayBatch(userID string, ids []string, notes string, paidAt time.Time) (int64, error) {
	var n int64
	for _, id := range ids {
		c, ok := r.s.commissions[id]
		if !ok || c.UserID != userID {
			continue
		}
		if c.Status != entity.CommissionPending && c.Status != entity.CommissionApproved {
			continue
		}
		c.Status = entity.CommissionPaid
		c.PaidDate = cloneTime(&paidAt)
		if notes != "" {
			c.Notes = notes
		}
		c.UpdatedAt = paidAt
		n++
	}
	return n, nil
}

type serviceRepo struct{ s *Store }

var _ repository.TechnicalServiceRepository = (*serviceRepo)(nil)

func (r *serviceRepo) Create(service *entity.TechnicalService) error {
	r.s.services[service.ID] = cloneService(service)
	return nil
}

func (r *serviceRepo) GetByID(userID, id string) (*entity.TechnicalService, error) {
	sv, ok := r.s.services[id]
	if !ok || sv.UserID != userID {
		return nil, nil
	}
	return cloneService(sv), nil
}

func (r *serviceRepo) Update(service *entity.TechnicalService) error {
	r.s.services[service.ID] = cloneService(service)
	return nil
}

func (r *serviceRepo) Delete(userID, id string) error {
	if sv, ok := r.s.services[id]; ok && sv.UserID == userID {
		delete(r.s.services, id)
	}
	return nil
}

func (r *serviceRepo) List(userID string, filter repository.ServiceFilter) ([]*entity.TechnicalService, error) {
	var list []*entity.TechnicalService
	for _, sv := range r.s.services {
		if sv.UserID != userID {
			continue
		}
		if filter.Status != "" && sv.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && sv.Priority != filter.Priority {
			continue
		}
		if filter.Customer != "" &&
			!strings.Contains(fold(sv.Customer.Name), fold(filter.Customer)) {
			continue
		}
		if !inRange(sv.EntryDate, filter.StartDate, filter.EndDate) {
			continue
		}
		list = append(list, cloneService(sv))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].EntryDate.After(list[j].EntryDate) })
	return list, nil
}

type userRepo struct{ s *Store }

var _ repository.UserRepository = (*userRepo)(nil)

func (r *userRepo) Create(user *entity.User) error {
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	folded := fold(email)
	for _, u := range r.s.users {
		if fold(u.Email) == folded {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepo) IncrementStat(userID, stat string) error {
	u, ok := r.s.users[userID]
	if !ok {
		return nil
	}
	switch stat {
	case entity.StatTotalSales:
		u.Stats.TotalSales++
	case entity.StatTotalPurchases:
		u.Stats.TotalPurchases++
	}
	return nil
}

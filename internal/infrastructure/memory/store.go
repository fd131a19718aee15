// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con transacciones por snapshot. Respalda las pruebas de los casos
// de uso sin una base de datos real.
package memory

import (
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/Camilo196/Vendly/internal/domain/entity"
)

// Store almacén en memoria de todas las entidades, indexadas por ID.
type Store struct {
	mu sync.Mutex

	users       map[string]*entity.User
	products    map[string]*entity.Product
	purchases   map[string]*entity.Purchase
	sales       map[string]*entity.Sale
	employees   map[string]*entity.Employee
	commissions map[string]*entity.Commission
	services    map[string]*entity.TechnicalService
}

// fold normaliza nombres para comparaciones case-insensitive.
// Se crea un Caser por llamada: no son seguros para uso concurrente.
func fold(s string) string {
	return cases.Fold().String(s)
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:       make(map[string]*entity.User),
		products:    make(map[string]*entity.Product),
		purchases:   make(map[string]*entity.Purchase),
		sales:       make(map[string]*entity.Sale),
		employees:   make(map[string]*entity.Employee),
		commissions: make(map[string]*entity.Commission),
		services:    make(map[string]*entity.TechnicalService),
	}
}

// snapshot copia profunda del estado, para rollback de transacciones.
func (s *Store) snapshot() *Store {
	snap := NewStore()
	for k, v := range s.users {
		snap.users[k] = cloneUser(v)
	}
	for k, v := range s.products {
		snap.products[k] = cloneProduct(v)
	}
	for k, v := range s.purchases {
		snap.purchases[k] = clonePurchase(v)
	}
	for k, v := range s.sales {
		snap.sales[k] = cloneSale(v)
	}
	for k, v := range s.employees {
		snap.employees[k] = cloneEmployee(v)
	}
	for k, v := range s.commissions {
		snap.commissions[k] = cloneCommission(v)
	}
	for k, v := range s.services {
		snap.services[k] = cloneService(v)
	}
	return snap
}

func (s *Store) restore(snap *Store) {
	s.users = snap.users
	s.products = snap.products
	s.purchases = snap.purchases
	s.sales = snap.sales
	s.employees = snap.employees
	s.commissions = snap.commissions
	s.services = snap.services
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	if p.CommissionRate != nil {
		rate := *p.CommissionRate
		c.CommissionRate = &rate
	}
	return &c
}

func clonePurchase(p *entity.Purchase) *entity.Purchase {
	c := *p
	return &c
}

func cloneSale(s *entity.Sale) *entity.Sale {
	c := *s
	c.EmployeeID = cloneString(s.EmployeeID)
	return &c
}

func cloneEmployee(e *entity.Employee) *entity.Employee {
	c := *e
	return &c
}

func cloneCommission(cm *entity.Commission) *entity.Commission {
	c := *cm
	c.ApprovedDate = cloneTime(cm.ApprovedDate)
	c.PaidDate = cloneTime(cm.PaidDate)
	return &c
}

func cloneService(sv *entity.TechnicalService) *entity.TechnicalService {
	c := *sv
	c.TechnicianID = cloneString(sv.TechnicianID)
	c.CommissionID = cloneString(sv.CommissionID)
	c.EstimatedCompletionDate = cloneTime(sv.EstimatedCompletionDate)
	c.CompletionDate = cloneTime(sv.CompletionDate)
	c.DeliveryDate = cloneTime(sv.DeliveryDate)
	c.PartsUsed = make([]entity.PartUsed, len(sv.PartsUsed))
	copy(c.PartsUsed, sv.PartsUsed)
	return &c
}

func inRange(t time.Time, start, end *time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}

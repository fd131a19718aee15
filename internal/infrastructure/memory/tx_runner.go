package memory

import (
	"context"

	"github.com/Camilo196/Vendly/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre el almacén en memoria: toma un snapshot del
// estado y lo restaura si el callback falla.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos del almacén. Commit implícito; rollback por
// snapshot ante error.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	repos := ports.TxRepos{
		Products:    &productRepo{r.store},
		Purchases:   &purchaseRepo{r.store},
		Sales:       &saleRepo{r.store},
		Employees:   &employeeRepo{r.store},
		Commissions: &commissionRepo{r.store},
		Services:    &serviceRepo{r.store},
		Users:       &userRepo{r.store},
	}
	if err := fn(repos); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

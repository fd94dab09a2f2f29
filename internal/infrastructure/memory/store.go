// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con transacciones copy-on-commit. Se usa en tests y en modo demo:
// mismo contrato que el adaptador PostgreSQL, sin base de datos.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

// Store guarda todo el estado bajo un mutex global. Run clona el estado,
// ejecuta el callback sobre el clon y solo al terminar sin error lo publica:
// un fallo a mitad de camino no deja escrituras parciales visibles.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn contra un clon del estado y publica el clon si fn no falla.
// El mutex global serializa las transacciones, así que las precondiciones
// re-evaluadas dentro de fn ven siempre el estado comprometido más reciente.
func (s *Store) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.st.clone()
	bundle := repository.Tx{
		Products:       &productRepo{st: staged},
		History:        &historyRepo{st: staged},
		Issuances:      &issuanceRepo{st: staged},
		Returns:        &returnRepo{st: staged},
		PurchaseOrders: &purchaseOrderRepo{st: staged},
		JobOrders:      &jobOrderRepo{st: staged},
		Installations:  &installationRepo{st: staged},
		Disposals:      &disposalRepo{st: staged},
		Tools:          &toolRepo{st: staged},
		Counters:       &counterRepo{st: staged},
	}
	if err := fn(bundle); err != nil {
		return err
	}
	s.st = staged
	return nil
}

// Products devuelve el repositorio de productos para lecturas fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return &lockedProducts{s: s} }

// History devuelve el repositorio de historial de stock.
func (s *Store) History() repository.StockHistoryRepository { return &lockedHistory{s: s} }

// Issuances devuelve el repositorio de salidas.
func (s *Store) Issuances() repository.IssuanceRepository { return &lockedIssuances{s: s} }

// Returns devuelve el repositorio de devoluciones.
func (s *Store) Returns() repository.ReturnRepository { return &lockedReturns{s: s} }

// PurchaseOrders devuelve el repositorio de órdenes de compra.
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository { return &lockedPOs{s: s} }

// JobOrders devuelve el repositorio de órdenes de trabajo.
func (s *Store) JobOrders() repository.JobOrderRepository { return &lockedJobOrders{s: s} }

// Installations devuelve el repositorio de instalaciones.
func (s *Store) Installations() repository.InstallationRepository { return &lockedInstallations{s: s} }

// Disposals devuelve el repositorio de bajas.
func (s *Store) Disposals() repository.DisposalRepository { return &lockedDisposals{s: s} }

// Tools devuelve el repositorio de herramientas.
func (s *Store) Tools() repository.ToolRepository { return &lockedTools{s: s} }

// Clients devuelve el repositorio de clientes.
func (s *Store) Clients() repository.ClientRepository { return &lockedClients{s: s} }

// Suppliers devuelve el repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return &lockedSuppliers{s: s} }

// state es el contenido del almacén. Los clones copian mapas, slices y los
// structs de cabecera; los campos *time.Time nunca se mutan a través del
// puntero, así que compartirlos es seguro.
type state struct {
	products      map[string]*entity.Product
	history       []*entity.StockSnapshot
	issuances     map[string]*entity.Issuance
	returns       map[string]*entity.Return
	pos           map[string]*entity.PurchaseOrder
	jobOrders     map[string]*entity.JobOrder
	installations map[string]*entity.Installation
	disposals     map[string]*entity.DisposalEligible
	tools         map[string]*entity.Tool
	clients       map[string]*entity.Client
	suppliers     map[string]*entity.Supplier
	counters      map[string]int64
}

func newState() *state {
	return &state{
		products:      map[string]*entity.Product{},
		issuances:     map[string]*entity.Issuance{},
		returns:       map[string]*entity.Return{},
		pos:           map[string]*entity.PurchaseOrder{},
		jobOrders:     map[string]*entity.JobOrder{},
		installations: map[string]*entity.Installation{},
		disposals:     map[string]*entity.DisposalEligible{},
		tools:         map[string]*entity.Tool{},
		clients:       map[string]*entity.Client{},
		suppliers:     map[string]*entity.Supplier{},
		counters:      map[string]int64{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	c.history = append([]*entity.StockSnapshot(nil), s.history...)
	for id, i := range s.issuances {
		ci := *i
		ci.Items = append([]entity.IssuanceItem(nil), i.Items...)
		c.issuances[id] = &ci
	}
	for id, r := range s.returns {
		cr := *r
		cr.Items = append([]entity.ReturnItem(nil), r.Items...)
		c.returns[id] = &cr
	}
	for id, po := range s.pos {
		cpo := *po
		cpo.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
		c.pos[id] = &cpo
	}
	for id, jo := range s.jobOrders {
		cjo := *jo
		cjo.Items = append([]entity.JobOrderItem(nil), jo.Items...)
		c.jobOrders[id] = &cjo
	}
	for id, inst := range s.installations {
		cinst := *inst
		cinst.Items = append([]entity.InstallationItem(nil), inst.Items...)
		c.installations[id] = &cinst
	}
	for id, d := range s.disposals {
		cd := *d
		c.disposals[id] = &cd
	}
	for id, t := range s.tools {
		ct := *t
		c.tools[id] = &ct
	}
	for id, cl := range s.clients {
		ccl := *cl
		c.clients[id] = &ccl
	}
	for id, sp := range s.suppliers {
		csp := *sp
		c.suppliers[id] = &csp
	}
	for dt, n := range s.counters {
		c.counters[dt] = n
	}
	return c
}

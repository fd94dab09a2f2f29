package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// Wrappers que toman el mutex del Store por llamada: el equivalente en
// memoria de los repos atados al pool (lecturas y escrituras fuera de
// transacción, cada una atómica por sí sola).

type lockedProducts struct{ s *Store }

func (l *lockedProducts) Create(p *entity.Product) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&productRepo{st: l.s.st}).Create(p)
}

func (l *lockedProducts) Update(p *entity.Product) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&productRepo{st: l.s.st}).Update(p)
}

func (l *lockedProducts) GetByID(id string) (*entity.Product, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&productRepo{st: l.s.st}).GetByID(id)
}

func (l *lockedProducts) GetBySKU(sku string) (*entity.Product, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&productRepo{st: l.s.st}).GetBySKU(sku)
}

func (l *lockedProducts) GetForUpdate(id string) (*entity.Product, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&productRepo{st: l.s.st}).GetForUpdate(id)
}

func (l *lockedProducts) UpdateStock(id string, stock int64, updatedAt time.Time) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&productRepo{st: l.s.st}).UpdateStock(id, stock, updatedAt)
}

func (l *lockedProducts) List(limit, offset int) ([]*entity.Product, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&productRepo{st: l.s.st}).List(limit, offset)
}

type lockedHistory struct{ s *Store }

func (l *lockedHistory) Append(s *entity.StockSnapshot) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&historyRepo{st: l.s.st}).Append(s)
}

func (l *lockedHistory) LatestAsOf(productID string, cutoff time.Time) (*entity.StockSnapshot, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&historyRepo{st: l.s.st}).LatestAsOf(productID, cutoff)
}

func (l *lockedHistory) ListByProduct(productID string, limit, offset int) ([]*entity.StockSnapshot, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&historyRepo{st: l.s.st}).ListByProduct(productID, limit, offset)
}

type lockedIssuances struct{ s *Store }

func (l *lockedIssuances) Create(i *entity.Issuance) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&issuanceRepo{st: l.s.st}).Create(i)
}

func (l *lockedIssuances) GetByID(id string) (*entity.Issuance, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&issuanceRepo{st: l.s.st}).GetByID(id)
}

func (l *lockedIssuances) Delete(id string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&issuanceRepo{st: l.s.st}).Delete(id)
}

func (l *lockedIssuances) List(limit, offset int) ([]*entity.Issuance, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&issuanceRepo{st: l.s.st}).List(limit, offset)
}

type lockedReturns struct{ s *Store }

func (l *lockedReturns) Create(ret *entity.Return) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&returnRepo{st: l.s.st}).Create(ret)
}

func (l *lockedReturns) GetByID(id string) (*entity.Return, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&returnRepo{st: l.s.st}).GetByID(id)
}

func (l *lockedReturns) GetForUpdate(id string) (*entity.Return, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&returnRepo{st: l.s.st}).GetForUpdate(id)
}

func (l *lockedReturns) UpdateStatus(id string, status entity.ReturnStatus, updatedAt time.Time) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&returnRepo{st: l.s.st}).UpdateStatus(id, status, updatedAt)
}

func (l *lockedReturns) UpdateItemInspection(itemID string, restocked, disposed, unaccounted int64) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&returnRepo{st: l.s.st}).UpdateItemInspection(itemID, restocked, disposed, unaccounted)
}

func (l *lockedReturns) ExistsByIssuance(issuanceID string) (bool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&returnRepo{st: l.s.st}).ExistsByIssuance(issuanceID)
}

func (l *lockedReturns) List(limit, offset int) ([]*entity.Return, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&returnRepo{st: l.s.st}).List(limit, offset)
}

type lockedPOs struct{ s *Store }

func (l *lockedPOs) Create(po *entity.PurchaseOrder) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&purchaseOrderRepo{st: l.s.st}).Create(po)
}

func (l *lockedPOs) GetByID(id string) (*entity.PurchaseOrder, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&purchaseOrderRepo{st: l.s.st}).GetByID(id)
}

func (l *lockedPOs) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&purchaseOrderRepo{st: l.s.st}).GetForUpdate(id)
}

func (l *lockedPOs) UpdateStatus(id string, status entity.POStatus, receivedDate *time.Time, updatedAt time.Time) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&purchaseOrderRepo{st: l.s.st}).UpdateStatus(id, status, receivedDate, updatedAt)
}

func (l *lockedPOs) UpdateItemReceived(itemID string, receivedQty int64) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&purchaseOrderRepo{st: l.s.st}).UpdateItemReceived(itemID, receivedQty)
}

func (l *lockedPOs) UpdatePayment(id string, status entity.PaymentStatus, amount decimal.Decimal, updatedAt time.Time) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&purchaseOrderRepo{st: l.s.st}).UpdatePayment(id, status, amount, updatedAt)
}

func (l *lockedPOs) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&purchaseOrderRepo{st: l.s.st}).List(limit, offset)
}

type lockedJobOrders struct{ s *Store }

func (l *lockedJobOrders) Create(jo *entity.JobOrder) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&jobOrderRepo{st: l.s.st}).Create(jo)
}

func (l *lockedJobOrders) GetByID(id string) (*entity.JobOrder, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&jobOrderRepo{st: l.s.st}).GetByID(id)
}

func (l *lockedJobOrders) GetItem(jobOrderID, itemID string) (*entity.JobOrderItem, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&jobOrderRepo{st: l.s.st}).GetItem(jobOrderID, itemID)
}

func (l *lockedJobOrders) GetItemForUpdate(jobOrderID, itemID string) (*entity.JobOrderItem, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&jobOrderRepo{st: l.s.st}).GetItemForUpdate(jobOrderID, itemID)
}

func (l *lockedJobOrders) UpdateItemStatus(itemID string, status entity.FabricationStatus, updatedAt time.Time) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&jobOrderRepo{st: l.s.st}).UpdateItemStatus(itemID, status, updatedAt)
}

func (l *lockedJobOrders) List(limit, offset int) ([]*entity.JobOrder, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&jobOrderRepo{st: l.s.st}).List(limit, offset)
}

type lockedInstallations struct{ s *Store }

func (l *lockedInstallations) Create(inst *entity.Installation) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&installationRepo{st: l.s.st}).Create(inst)
}

func (l *lockedInstallations) GetByID(id string) (*entity.Installation, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&installationRepo{st: l.s.st}).GetByID(id)
}

func (l *lockedInstallations) List(limit, offset int) ([]*entity.Installation, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&installationRepo{st: l.s.st}).List(limit, offset)
}

type lockedDisposals struct{ s *Store }

func (l *lockedDisposals) CreateEligible(d *entity.DisposalEligible) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&disposalRepo{st: l.s.st}).CreateEligible(d)
}

func (l *lockedDisposals) GetEligibleByID(id string) (*entity.DisposalEligible, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&disposalRepo{st: l.s.st}).GetEligibleByID(id)
}

func (l *lockedDisposals) GetEligibleForUpdate(id string) (*entity.DisposalEligible, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&disposalRepo{st: l.s.st}).GetEligibleForUpdate(id)
}

func (l *lockedDisposals) MarkDisposed(id string, at time.Time, by, reason string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&disposalRepo{st: l.s.st}).MarkDisposed(id, at, by, reason)
}

func (l *lockedDisposals) ListPending(limit, offset int) ([]*entity.DisposalEligible, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&disposalRepo{st: l.s.st}).ListPending(limit, offset)
}

type lockedTools struct{ s *Store }

func (l *lockedTools) Create(t *entity.Tool) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&toolRepo{st: l.s.st}).Create(t)
}

func (l *lockedTools) GetByID(id string) (*entity.Tool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&toolRepo{st: l.s.st}).GetByID(id)
}

func (l *lockedTools) GetForUpdate(id string) (*entity.Tool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&toolRepo{st: l.s.st}).GetForUpdate(id)
}

func (l *lockedTools) UpdateStatus(id string, status entity.ToolStatus, disposedAt *time.Time, updatedAt time.Time) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&toolRepo{st: l.s.st}).UpdateStatus(id, status, disposedAt, updatedAt)
}

func (l *lockedTools) List(limit, offset int) ([]*entity.Tool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&toolRepo{st: l.s.st}).List(limit, offset)
}

type lockedClients struct{ s *Store }

func (l *lockedClients) Create(c *entity.Client) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&clientRepo{st: l.s.st}).Create(c)
}

func (l *lockedClients) Update(c *entity.Client) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&clientRepo{st: l.s.st}).Update(c)
}

func (l *lockedClients) GetByID(id string) (*entity.Client, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&clientRepo{st: l.s.st}).GetByID(id)
}

func (l *lockedClients) List(limit, offset int) ([]*entity.Client, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&clientRepo{st: l.s.st}).List(limit, offset)
}

type lockedSuppliers struct{ s *Store }

func (l *lockedSuppliers) Create(s *entity.Supplier) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&supplierRepo{st: l.s.st}).Create(s)
}

func (l *lockedSuppliers) Update(s *entity.Supplier) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&supplierRepo{st: l.s.st}).Update(s)
}

func (l *lockedSuppliers) GetByID(id string) (*entity.Supplier, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&supplierRepo{st: l.s.st}).GetByID(id)
}

func (l *lockedSuppliers) List(limit, offset int) ([]*entity.Supplier, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&supplierRepo{st: l.s.st}).List(limit, offset)
}

package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// Los repos de este archivo operan sobre un *state sin sincronización propia:
// dentro de Run el mutex del Store ya está tomado, y los wrappers locked*
// lo toman para las lecturas fuera de transacción.

type productRepo struct{ st *state }

func (r *productRepo) Create(p *entity.Product) error {
	for _, existing := range r.st.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	if _, ok := r.st.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.st.products[p.ID] = &cp
	return nil
}

func (r *productRepo) Update(p *entity.Product) error {
	existing, ok := r.st.products[p.ID]
	if !ok {
		return nil
	}
	cp := *p
	cp.Stock = existing.Stock // el stock solo lo escribe UpdateStock
	r.st.products[p.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.st.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	// El mutex global ya serializa: equivale a GetByID.
	return r.GetByID(id)
}

func (r *productRepo) UpdateStock(id string, stock int64, updatedAt time.Time) error {
	if p, ok := r.st.products[id]; ok {
		p.Stock = stock
		p.UpdatedAt = updatedAt
	}
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	all := make([]*entity.Product, 0, len(r.st.products))
	for _, p := range r.st.products {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

type historyRepo struct{ st *state }

func (r *historyRepo) Append(s *entity.StockSnapshot) error {
	cp := *s
	r.st.history = append(r.st.history, &cp)
	return nil
}

func (r *historyRepo) LatestAsOf(productID string, cutoff time.Time) (*entity.StockSnapshot, error) {
	var best *entity.StockSnapshot
	for _, s := range r.st.history {
		if s.ProductID != productID || s.RecordedAt.After(cutoff) {
			continue
		}
		if best == nil || !s.RecordedAt.Before(best.RecordedAt) {
			best = s
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (r *historyRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockSnapshot, error) {
	var all []*entity.StockSnapshot
	// El historial se agrega en orden cronológico; se lista del más reciente.
	for i := len(r.st.history) - 1; i >= 0; i-- {
		if r.st.history[i].ProductID == productID {
			cp := *r.st.history[i]
			all = append(all, &cp)
		}
	}
	return page(all, limit, offset), nil
}

type issuanceRepo struct{ st *state }

func (r *issuanceRepo) Create(i *entity.Issuance) error {
	if _, ok := r.st.issuances[i.ID]; ok {
		return domain.ErrDuplicate
	}
	ci := *i
	ci.Items = append([]entity.IssuanceItem(nil), i.Items...)
	r.st.issuances[i.ID] = &ci
	return nil
}

func (r *issuanceRepo) GetByID(id string) (*entity.Issuance, error) {
	i, ok := r.st.issuances[id]
	if !ok {
		return nil, nil
	}
	ci := *i
	ci.Items = append([]entity.IssuanceItem(nil), i.Items...)
	return &ci, nil
}

func (r *issuanceRepo) Delete(id string) error {
	delete(r.st.issuances, id)
	return nil
}

func (r *issuanceRepo) List(limit, offset int) ([]*entity.Issuance, error) {
	all := make([]*entity.Issuance, 0, len(r.st.issuances))
	for _, i := range r.st.issuances {
		ci := *i
		ci.Items = append([]entity.IssuanceItem(nil), i.Items...)
		all = append(all, &ci)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

type returnRepo struct{ st *state }

func (r *returnRepo) Create(ret *entity.Return) error {
	if _, ok := r.st.returns[ret.ID]; ok {
		return domain.ErrDuplicate
	}
	cr := *ret
	cr.Items = append([]entity.ReturnItem(nil), ret.Items...)
	r.st.returns[ret.ID] = &cr
	return nil
}

func (r *returnRepo) GetByID(id string) (*entity.Return, error) {
	ret, ok := r.st.returns[id]
	if !ok {
		return nil, nil
	}
	cr := *ret
	cr.Items = append([]entity.ReturnItem(nil), ret.Items...)
	return &cr, nil
}

func (r *returnRepo) GetForUpdate(id string) (*entity.Return, error) {
	return r.GetByID(id)
}

func (r *returnRepo) UpdateStatus(id string, status entity.ReturnStatus, updatedAt time.Time) error {
	if ret, ok := r.st.returns[id]; ok {
		ret.Status = status
		ret.UpdatedAt = updatedAt
	}
	return nil
}

func (r *returnRepo) UpdateItemInspection(itemID string, restocked, disposed, unaccounted int64) error {
	for _, ret := range r.st.returns {
		for idx := range ret.Items {
			if ret.Items[idx].ID == itemID {
				ret.Items[idx].Restocked = restocked
				ret.Items[idx].Disposed = disposed
				ret.Items[idx].Unaccounted = unaccounted
				return nil
			}
		}
	}
	return nil
}

func (r *returnRepo) ExistsByIssuance(issuanceID string) (bool, error) {
	for _, ret := range r.st.returns {
		if ret.IssuanceID == issuanceID && ret.Status != entity.ReturnCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (r *returnRepo) List(limit, offset int) ([]*entity.Return, error) {
	all := make([]*entity.Return, 0, len(r.st.returns))
	for _, ret := range r.st.returns {
		cr := *ret
		cr.Items = append([]entity.ReturnItem(nil), ret.Items...)
		all = append(all, &cr)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

type purchaseOrderRepo struct{ st *state }

func (r *purchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	if _, ok := r.st.pos[po.ID]; ok {
		return domain.ErrDuplicate
	}
	cpo := *po
	cpo.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	r.st.pos[po.ID] = &cpo
	return nil
}

func (r *purchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	po, ok := r.st.pos[id]
	if !ok {
		return nil, nil
	}
	cpo := *po
	cpo.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	return &cpo, nil
}

func (r *purchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *purchaseOrderRepo) UpdateStatus(id string, status entity.POStatus, receivedDate *time.Time, updatedAt time.Time) error {
	if po, ok := r.st.pos[id]; ok {
		po.Status = status
		if receivedDate != nil {
			po.ReceivedDate = receivedDate
		}
		po.UpdatedAt = updatedAt
	}
	return nil
}

func (r *purchaseOrderRepo) UpdateItemReceived(itemID string, receivedQty int64) error {
	for _, po := range r.st.pos {
		for idx := range po.Items {
			if po.Items[idx].ID == itemID {
				po.Items[idx].ReceivedQty = receivedQty
				return nil
			}
		}
	}
	return nil
}

func (r *purchaseOrderRepo) UpdatePayment(id string, status entity.PaymentStatus, amount decimal.Decimal, updatedAt time.Time) error {
	if po, ok := r.st.pos[id]; ok {
		po.PaymentStatus = status
		po.PaidAmount = amount
		po.UpdatedAt = updatedAt
	}
	return nil
}

func (r *purchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	all := make([]*entity.PurchaseOrder, 0, len(r.st.pos))
	for _, po := range r.st.pos {
		cpo := *po
		cpo.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
		all = append(all, &cpo)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

type jobOrderRepo struct{ st *state }

func (r *jobOrderRepo) Create(jo *entity.JobOrder) error {
	if _, ok := r.st.jobOrders[jo.ID]; ok {
		return domain.ErrDuplicate
	}
	cjo := *jo
	cjo.Items = append([]entity.JobOrderItem(nil), jo.Items...)
	r.st.jobOrders[jo.ID] = &cjo
	return nil
}

func (r *jobOrderRepo) GetByID(id string) (*entity.JobOrder, error) {
	jo, ok := r.st.jobOrders[id]
	if !ok {
		return nil, nil
	}
	cjo := *jo
	cjo.Items = append([]entity.JobOrderItem(nil), jo.Items...)
	return &cjo, nil
}

func (r *jobOrderRepo) GetItem(jobOrderID, itemID string) (*entity.JobOrderItem, error) {
	jo, ok := r.st.jobOrders[jobOrderID]
	if !ok {
		return nil, nil
	}
	for _, it := range jo.Items {
		if it.ID == itemID {
			cit := it
			return &cit, nil
		}
	}
	return nil, nil
}

func (r *jobOrderRepo) GetItemForUpdate(jobOrderID, itemID string) (*entity.JobOrderItem, error) {
	return r.GetItem(jobOrderID, itemID)
}

func (r *jobOrderRepo) UpdateItemStatus(itemID string, status entity.FabricationStatus, updatedAt time.Time) error {
	for _, jo := range r.st.jobOrders {
		for idx := range jo.Items {
			if jo.Items[idx].ID == itemID {
				jo.Items[idx].Status = status
				jo.Items[idx].UpdatedAt = updatedAt
				jo.UpdatedAt = updatedAt
				return nil
			}
		}
	}
	return nil
}

func (r *jobOrderRepo) List(limit, offset int) ([]*entity.JobOrder, error) {
	all := make([]*entity.JobOrder, 0, len(r.st.jobOrders))
	for _, jo := range r.st.jobOrders {
		cjo := *jo
		cjo.Items = append([]entity.JobOrderItem(nil), jo.Items...)
		all = append(all, &cjo)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

type installationRepo struct{ st *state }

func (r *installationRepo) Create(inst *entity.Installation) error {
	if _, ok := r.st.installations[inst.ID]; ok {
		return domain.ErrDuplicate
	}
	cinst := *inst
	cinst.Items = append([]entity.InstallationItem(nil), inst.Items...)
	r.st.installations[inst.ID] = &cinst
	return nil
}

func (r *installationRepo) GetByID(id string) (*entity.Installation, error) {
	inst, ok := r.st.installations[id]
	if !ok {
		return nil, nil
	}
	cinst := *inst
	cinst.Items = append([]entity.InstallationItem(nil), inst.Items...)
	return &cinst, nil
}

func (r *installationRepo) List(limit, offset int) ([]*entity.Installation, error) {
	all := make([]*entity.Installation, 0, len(r.st.installations))
	for _, inst := range r.st.installations {
		cinst := *inst
		cinst.Items = append([]entity.InstallationItem(nil), inst.Items...)
		all = append(all, &cinst)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

type disposalRepo struct{ st *state }

func (r *disposalRepo) CreateEligible(d *entity.DisposalEligible) error {
	cd := *d
	r.st.disposals[d.ID] = &cd
	return nil
}

func (r *disposalRepo) GetEligibleByID(id string) (*entity.DisposalEligible, error) {
	d, ok := r.st.disposals[id]
	if !ok {
		return nil, nil
	}
	cd := *d
	return &cd, nil
}

func (r *disposalRepo) GetEligibleForUpdate(id string) (*entity.DisposalEligible, error) {
	return r.GetEligibleByID(id)
}

func (r *disposalRepo) MarkDisposed(id string, at time.Time, by, reason string) error {
	if d, ok := r.st.disposals[id]; ok {
		d.Disposed = true
		d.DisposedAt = &at
		d.DisposedBy = by
		d.Reason = reason
	}
	return nil
}

func (r *disposalRepo) ListPending(limit, offset int) ([]*entity.DisposalEligible, error) {
	var all []*entity.DisposalEligible
	for _, d := range r.st.disposals {
		if !d.Disposed {
			cd := *d
			all = append(all, &cd)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

type toolRepo struct{ st *state }

func (r *toolRepo) Create(t *entity.Tool) error {
	if _, ok := r.st.tools[t.ID]; ok {
		return domain.ErrDuplicate
	}
	ct := *t
	r.st.tools[t.ID] = &ct
	return nil
}

func (r *toolRepo) GetByID(id string) (*entity.Tool, error) {
	t, ok := r.st.tools[id]
	if !ok {
		return nil, nil
	}
	ct := *t
	return &ct, nil
}

func (r *toolRepo) GetForUpdate(id string) (*entity.Tool, error) {
	return r.GetByID(id)
}

func (r *toolRepo) UpdateStatus(id string, status entity.ToolStatus, disposedAt *time.Time, updatedAt time.Time) error {
	if t, ok := r.st.tools[id]; ok {
		t.Status = status
		if disposedAt != nil {
			t.DisposedAt = disposedAt
		}
		t.UpdatedAt = updatedAt
	}
	return nil
}

func (r *toolRepo) List(limit, offset int) ([]*entity.Tool, error) {
	all := make([]*entity.Tool, 0, len(r.st.tools))
	for _, t := range r.st.tools {
		ct := *t
		all = append(all, &ct)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

type clientRepo struct{ st *state }

func (r *clientRepo) Create(c *entity.Client) error {
	if _, ok := r.st.clients[c.ID]; ok {
		return domain.ErrDuplicate
	}
	cc := *c
	r.st.clients[c.ID] = &cc
	return nil
}

func (r *clientRepo) Update(c *entity.Client) error {
	if _, ok := r.st.clients[c.ID]; ok {
		cc := *c
		r.st.clients[c.ID] = &cc
	}
	return nil
}

func (r *clientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.st.clients[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *clientRepo) List(limit, offset int) ([]*entity.Client, error) {
	all := make([]*entity.Client, 0, len(r.st.clients))
	for _, c := range r.st.clients {
		cc := *c
		all = append(all, &cc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

type supplierRepo struct{ st *state }

func (r *supplierRepo) Create(s *entity.Supplier) error {
	if _, ok := r.st.suppliers[s.ID]; ok {
		return domain.ErrDuplicate
	}
	cs := *s
	r.st.suppliers[s.ID] = &cs
	return nil
}

func (r *supplierRepo) Update(s *entity.Supplier) error {
	if _, ok := r.st.suppliers[s.ID]; ok {
		cs := *s
		r.st.suppliers[s.ID] = &cs
	}
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.st.suppliers[id]
	if !ok {
		return nil, nil
	}
	cs := *s
	return &cs, nil
}

func (r *supplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	all := make([]*entity.Supplier, 0, len(r.st.suppliers))
	for _, s := range r.st.suppliers {
		cs := *s
		all = append(all, &cs)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

type counterRepo struct{ st *state }

func (r *counterRepo) Next(docType string) (int64, error) {
	r.st.counters[docType]++
	return r.st.counters[docType], nil
}

// page aplica offset y limit sobre un slice ya ordenado.
func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

package catalogi

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"zaakregister/pkg/domainerrors"
)

// MemoryStore is the in-memory Store used in tests and local development.
type MemoryStore struct {
	mu sync.RWMutex

	catalogi              map[uuid.UUID]*Catalogus
	zaaktypen             map[uuid.UUID]*Zaaktype
	statustypen           map[uuid.UUID]*Statustype
	resultaattypen        map[uuid.UUID]*Resultaattype
	roltypen              map[uuid.UUID]*Roltype
	eigenschappen         map[uuid.UUID]*Eigenschap
	zaakobjecttypen       map[uuid.UUID]*ZaakObjectType
	informatieobjecttypen map[uuid.UUID]*InformatieObjectType
	besluittypen          map[uuid.UUID]*BesluitType
	zaaktypeIOTs          map[uuid.UUID]*ZaaktypeInformatieObjectType
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		catalogi:              make(map[uuid.UUID]*Catalogus),
		zaaktypen:             make(map[uuid.UUID]*Zaaktype),
		statustypen:           make(map[uuid.UUID]*Statustype),
		resultaattypen:        make(map[uuid.UUID]*Resultaattype),
		roltypen:              make(map[uuid.UUID]*Roltype),
		eigenschappen:         make(map[uuid.UUID]*Eigenschap),
		zaakobjecttypen:       make(map[uuid.UUID]*ZaakObjectType),
		informatieobjecttypen: make(map[uuid.UUID]*InformatieObjectType),
		besluittypen:          make(map[uuid.UUID]*BesluitType),
		zaaktypeIOTs:          make(map[uuid.UUID]*ZaaktypeInformatieObjectType),
	}
}

// InTx runs fn directly; the in-memory store has no transactional isolation.
func (s *MemoryStore) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *MemoryStore) CreateCatalogus(_ context.Context, catalogus *Catalogus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.catalogi {
		if existing.Domein == catalogus.Domein && existing.RSIN == catalogus.RSIN {
			return domainerrors.New(domainerrors.CodeUnique, "a catalogus with this domein and rsin already exists")
		}
	}
	c := *catalogus
	s.catalogi[c.ID] = &c
	return nil
}

func (s *MemoryStore) GetCatalogus(_ context.Context, id uuid.UUID) (*Catalogus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	catalogus, ok := s.catalogi[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *catalogus
	return &c, nil
}

func (s *MemoryStore) CreateZaaktype(_ context.Context, zaaktype *Zaaktype) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	z := *zaaktype
	s.zaaktypen[z.ID] = &z
	return nil
}

func (s *MemoryStore) GetZaaktype(_ context.Context, id uuid.UUID) (*Zaaktype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	zaaktype, ok := s.zaaktypen[id]
	if !ok {
		return nil, ErrNotFound
	}
	z := *zaaktype
	return &z, nil
}

func (s *MemoryStore) UpdateZaaktype(_ context.Context, zaaktype *Zaaktype) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zaaktypen[zaaktype.ID]; !ok {
		return ErrNotFound
	}
	z := *zaaktype
	s.zaaktypen[z.ID] = &z
	return nil
}

func (s *MemoryStore) DeleteZaaktype(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zaaktypen[id]; !ok {
		return ErrNotFound
	}
	delete(s.zaaktypen, id)
	for stID, st := range s.statustypen {
		if st.ZaaktypeID == id {
			delete(s.statustypen, stID)
		}
	}
	for rtID, rt := range s.resultaattypen {
		if rt.ZaaktypeID == id {
			delete(s.resultaattypen, rtID)
		}
	}
	for rolID, rol := range s.roltypen {
		if rol.ZaaktypeID == id {
			delete(s.roltypen, rolID)
		}
	}
	for eigID, eig := range s.eigenschappen {
		if eig.ZaaktypeID == id {
			delete(s.eigenschappen, eigID)
		}
	}
	for zotID, zot := range s.zaakobjecttypen {
		if zot.ZaaktypeID == id {
			delete(s.zaakobjecttypen, zotID)
		}
	}
	for relID, rel := range s.zaaktypeIOTs {
		if rel.ZaaktypeID == id {
			delete(s.zaaktypeIOTs, relID)
		}
	}
	return nil
}

func (s *MemoryStore) ListZaaktypen(_ context.Context, catalogusID uuid.UUID) ([]*Zaaktype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Zaaktype
	for _, zaaktype := range s.zaaktypen {
		if zaaktype.CatalogusID == catalogusID {
			z := *zaaktype
			out = append(out, &z)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListZaaktypeVersies(_ context.Context, catalogusID uuid.UUID, omschrijving string) ([]*Zaaktype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Zaaktype
	for _, zaaktype := range s.zaaktypen {
		if zaaktype.CatalogusID == catalogusID && zaaktype.Omschrijving == omschrijving {
			z := *zaaktype
			out = append(out, &z)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateStatustype(_ context.Context, statustype *Statustype) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := *statustype
	s.statustypen[st.ID] = &st
	return nil
}

func (s *MemoryStore) GetStatustype(_ context.Context, id uuid.UUID) (*Statustype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	statustype, ok := s.statustypen[id]
	if !ok {
		return nil, ErrNotFound
	}
	st := *statustype
	return &st, nil
}

func (s *MemoryStore) UpdateStatustype(_ context.Context, statustype *Statustype) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.statustypen[statustype.ID]; !ok {
		return ErrNotFound
	}
	st := *statustype
	s.statustypen[st.ID] = &st
	return nil
}

func (s *MemoryStore) DeleteStatustype(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.statustypen[id]; !ok {
		return ErrNotFound
	}
	delete(s.statustypen, id)
	return nil
}

func (s *MemoryStore) ListStatustypen(_ context.Context, zaaktypeID uuid.UUID) ([]*Statustype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Statustype
	for _, statustype := range s.statustypen {
		if statustype.ZaaktypeID == zaaktypeID {
			st := *statustype
			out = append(out, &st)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateResultaattype(_ context.Context, resultaattype *Resultaattype) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt := *resultaattype
	s.resultaattypen[rt.ID] = &rt
	return nil
}

func (s *MemoryStore) GetResultaattype(_ context.Context, id uuid.UUID) (*Resultaattype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resultaattype, ok := s.resultaattypen[id]
	if !ok {
		return nil, ErrNotFound
	}
	rt := *resultaattype
	return &rt, nil
}

func (s *MemoryStore) UpdateResultaattype(_ context.Context, resultaattype *Resultaattype) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resultaattypen[resultaattype.ID]; !ok {
		return ErrNotFound
	}
	rt := *resultaattype
	s.resultaattypen[rt.ID] = &rt
	return nil
}

func (s *MemoryStore) DeleteResultaattype(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resultaattypen[id]; !ok {
		return ErrNotFound
	}
	delete(s.resultaattypen, id)
	return nil
}

func (s *MemoryStore) ListResultaattypen(_ context.Context, zaaktypeID uuid.UUID) ([]*Resultaattype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Resultaattype
	for _, resultaattype := range s.resultaattypen {
		if resultaattype.ZaaktypeID == zaaktypeID {
			rt := *resultaattype
			out = append(out, &rt)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateRoltype(_ context.Context, roltype *Roltype) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt := *roltype
	s.roltypen[rt.ID] = &rt
	return nil
}

func (s *MemoryStore) GetRoltype(_ context.Context, id uuid.UUID) (*Roltype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roltype, ok := s.roltypen[id]
	if !ok {
		return nil, ErrNotFound
	}
	rt := *roltype
	return &rt, nil
}

func (s *MemoryStore) UpdateRoltype(_ context.Context, roltype *Roltype) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roltypen[roltype.ID]; !ok {
		return ErrNotFound
	}
	rt := *roltype
	s.roltypen[rt.ID] = &rt
	return nil
}

func (s *MemoryStore) DeleteRoltype(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roltypen[id]; !ok {
		return ErrNotFound
	}
	delete(s.roltypen, id)
	return nil
}

func (s *MemoryStore) ListRoltypen(_ context.Context, zaaktypeID uuid.UUID) ([]*Roltype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Roltype
	for _, roltype := range s.roltypen {
		if roltype.ZaaktypeID == zaaktypeID {
			rt := *roltype
			out = append(out, &rt)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateEigenschap(_ context.Context, eigenschap *Eigenschap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := *eigenschap
	s.eigenschappen[e.ID] = &e
	return nil
}

func (s *MemoryStore) GetEigenschap(_ context.Context, id uuid.UUID) (*Eigenschap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	eigenschap, ok := s.eigenschappen[id]
	if !ok {
		return nil, ErrNotFound
	}
	e := *eigenschap
	return &e, nil
}

func (s *MemoryStore) UpdateEigenschap(_ context.Context, eigenschap *Eigenschap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.eigenschappen[eigenschap.ID]; !ok {
		return ErrNotFound
	}
	e := *eigenschap
	s.eigenschappen[e.ID] = &e
	return nil
}

func (s *MemoryStore) DeleteEigenschap(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.eigenschappen[id]; !ok {
		return ErrNotFound
	}
	delete(s.eigenschappen, id)
	return nil
}

func (s *MemoryStore) ListEigenschappen(_ context.Context, zaaktypeID uuid.UUID) ([]*Eigenschap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Eigenschap
	for _, eigenschap := range s.eigenschappen {
		if eigenschap.ZaaktypeID == zaaktypeID {
			e := *eigenschap
			out = append(out, &e)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateZaakObjectType(_ context.Context, zaakobjecttype *ZaakObjectType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	zot := *zaakobjecttype
	s.zaakobjecttypen[zot.ID] = &zot
	return nil
}

func (s *MemoryStore) GetZaakObjectType(_ context.Context, id uuid.UUID) (*ZaakObjectType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	zaakobjecttype, ok := s.zaakobjecttypen[id]
	if !ok {
		return nil, ErrNotFound
	}
	zot := *zaakobjecttype
	return &zot, nil
}

func (s *MemoryStore) UpdateZaakObjectType(_ context.Context, zaakobjecttype *ZaakObjectType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zaakobjecttypen[zaakobjecttype.ID]; !ok {
		return ErrNotFound
	}
	zot := *zaakobjecttype
	s.zaakobjecttypen[zot.ID] = &zot
	return nil
}

func (s *MemoryStore) DeleteZaakObjectType(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zaakobjecttypen[id]; !ok {
		return ErrNotFound
	}
	delete(s.zaakobjecttypen, id)
	return nil
}

func (s *MemoryStore) ListZaakObjectTypen(_ context.Context, zaaktypeID uuid.UUID) ([]*ZaakObjectType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*ZaakObjectType
	for _, zaakobjecttype := range s.zaakobjecttypen {
		if zaakobjecttype.ZaaktypeID == zaaktypeID {
			zot := *zaakobjecttype
			out = append(out, &zot)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateInformatieObjectType(_ context.Context, informatieobjecttype *InformatieObjectType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	iot := *informatieobjecttype
	s.informatieobjecttypen[iot.ID] = &iot
	return nil
}

func (s *MemoryStore) GetInformatieObjectType(_ context.Context, id uuid.UUID) (*InformatieObjectType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	informatieobjecttype, ok := s.informatieobjecttypen[id]
	if !ok {
		return nil, ErrNotFound
	}
	iot := *informatieobjecttype
	return &iot, nil
}

func (s *MemoryStore) UpdateInformatieObjectType(_ context.Context, informatieobjecttype *InformatieObjectType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.informatieobjecttypen[informatieobjecttype.ID]; !ok {
		return ErrNotFound
	}
	iot := *informatieobjecttype
	s.informatieobjecttypen[iot.ID] = &iot
	return nil
}

func (s *MemoryStore) DeleteInformatieObjectType(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.informatieobjecttypen[id]; !ok {
		return ErrNotFound
	}
	delete(s.informatieobjecttypen, id)
	return nil
}

func (s *MemoryStore) CreateBesluitType(_ context.Context, besluittype *BesluitType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bt := *besluittype
	s.besluittypen[bt.ID] = &bt
	return nil
}

func (s *MemoryStore) GetBesluitType(_ context.Context, id uuid.UUID) (*BesluitType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	besluittype, ok := s.besluittypen[id]
	if !ok {
		return nil, ErrNotFound
	}
	bt := *besluittype
	return &bt, nil
}

func (s *MemoryStore) UpdateBesluitType(_ context.Context, besluittype *BesluitType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.besluittypen[besluittype.ID]; !ok {
		return ErrNotFound
	}
	bt := *besluittype
	s.besluittypen[bt.ID] = &bt
	return nil
}

func (s *MemoryStore) DeleteBesluitType(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.besluittypen[id]; !ok {
		return ErrNotFound
	}
	delete(s.besluittypen, id)
	return nil
}

func (s *MemoryStore) ListBesluitTypeVersies(_ context.Context, catalogusID uuid.UUID, omschrijving string) ([]*BesluitType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*BesluitType
	for _, besluittype := range s.besluittypen {
		if besluittype.CatalogusID == catalogusID && besluittype.Omschrijving == omschrijving {
			bt := *besluittype
			out = append(out, &bt)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateZaaktypeInformatieObjectType(_ context.Context, relation *ZaaktypeInformatieObjectType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rel := *relation
	s.zaaktypeIOTs[rel.ID] = &rel
	return nil
}

func (s *MemoryStore) GetZaaktypeInformatieObjectType(_ context.Context, id uuid.UUID) (*ZaaktypeInformatieObjectType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	relation, ok := s.zaaktypeIOTs[id]
	if !ok {
		return nil, ErrNotFound
	}
	rel := *relation
	return &rel, nil
}

func (s *MemoryStore) DeleteZaaktypeInformatieObjectType(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zaaktypeIOTs[id]; !ok {
		return ErrNotFound
	}
	delete(s.zaaktypeIOTs, id)
	return nil
}

func (s *MemoryStore) ListZaaktypeInformatieObjectTypen(_ context.Context, zaaktypeID uuid.UUID) ([]*ZaaktypeInformatieObjectType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*ZaaktypeInformatieObjectType
	for _, relation := range s.zaaktypeIOTs {
		if relation.ZaaktypeID == zaaktypeID {
			rel := *relation
			out = append(out, &rel)
		}
	}
	return out, nil
}

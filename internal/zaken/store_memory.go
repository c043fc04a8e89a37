package zaken

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"zaakregister/pkg/domainerrors"
)

// MemoryStore is the in-memory Store used in tests and local development.
type MemoryStore struct {
	mu sync.RWMutex

	zaken                  map[uuid.UUID]*Zaak
	statussen              map[uuid.UUID]*Status
	resultaten             map[uuid.UUID]*Resultaat
	rollen                 map[uuid.UUID]*Rol
	zaakeigenschappen      map[uuid.UUID]*ZaakEigenschap
	zaakobjecten           map[uuid.UUID]*ZaakObject
	besluiten              map[uuid.UUID]*Besluit
	zaakinformatieobjecten map[uuid.UUID]*ZaakInformatieObject

	// reservations keyed by (bronorganisatie, identificatie)
	reservations map[string]*ZaakIdentificatie
	sequences    map[string]int64 // (bronorganisatie, jaar) -> last volgnummer
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		zaken:                  make(map[uuid.UUID]*Zaak),
		statussen:              make(map[uuid.UUID]*Status),
		resultaten:             make(map[uuid.UUID]*Resultaat),
		rollen:                 make(map[uuid.UUID]*Rol),
		zaakeigenschappen:      make(map[uuid.UUID]*ZaakEigenschap),
		zaakobjecten:           make(map[uuid.UUID]*ZaakObject),
		besluiten:              make(map[uuid.UUID]*Besluit),
		zaakinformatieobjecten: make(map[uuid.UUID]*ZaakInformatieObject),
		reservations:           make(map[string]*ZaakIdentificatie),
		sequences:              make(map[string]int64),
	}
}

// InTx runs fn directly; the in-memory store has no transactional isolation.
func (s *MemoryStore) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func copyZaak(zaak *Zaak) *Zaak {
	z := *zaak
	if zaak.RelevanteAndereZaken != nil {
		z.RelevanteAndereZaken = append([]uuid.UUID(nil), zaak.RelevanteAndereZaken...)
	}
	if zaak.ProductenOfDiensten != nil {
		z.ProductenOfDiensten = append([]string(nil), zaak.ProductenOfDiensten...)
	}
	return &z
}

func (s *MemoryStore) CreateZaak(_ context.Context, zaak *Zaak) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.zaken {
		if existing.Bronorganisatie == zaak.Bronorganisatie && existing.Identificatie == zaak.Identificatie {
			return domainerrors.NewField("identificatie", domainerrors.CodeIdentificatieNietUniek,
				"a zaak with this identificatie already exists for the bronorganisatie")
		}
	}
	s.zaken[zaak.ID] = copyZaak(zaak)
	return nil
}

func (s *MemoryStore) GetZaak(_ context.Context, id uuid.UUID) (*Zaak, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	zaak, ok := s.zaken[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyZaak(zaak), nil
}

// LockZaak is plain Get in memory; tests exercising lock semantics use the
// PostgreSQL store.
func (s *MemoryStore) LockZaak(ctx context.Context, id uuid.UUID) (*Zaak, error) {
	return s.GetZaak(ctx, id)
}

func (s *MemoryStore) UpdateZaak(_ context.Context, zaak *Zaak) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zaken[zaak.ID]; !ok {
		return ErrNotFound
	}
	s.zaken[zaak.ID] = copyZaak(zaak)
	return nil
}

func (s *MemoryStore) DeleteZaak(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zaken[id]; !ok {
		return ErrNotFound
	}
	delete(s.zaken, id)
	for statusID, status := range s.statussen {
		if status.ZaakID == id {
			delete(s.statussen, statusID)
		}
	}
	for resultaatID, resultaat := range s.resultaten {
		if resultaat.ZaakID == id {
			delete(s.resultaten, resultaatID)
		}
	}
	for rolID, rol := range s.rollen {
		if rol.ZaakID == id {
			delete(s.rollen, rolID)
		}
	}
	for eigenschapID, eigenschap := range s.zaakeigenschappen {
		if eigenschap.ZaakID == id {
			delete(s.zaakeigenschappen, eigenschapID)
		}
	}
	for objectID, object := range s.zaakobjecten {
		if object.ZaakID == id {
			delete(s.zaakobjecten, objectID)
		}
	}
	for besluitID, besluit := range s.besluiten {
		if besluit.ZaakID == id {
			delete(s.besluiten, besluitID)
		}
	}
	for zioID, zio := range s.zaakinformatieobjecten {
		if zio.ZaakID == id {
			delete(s.zaakinformatieobjecten, zioID)
		}
	}
	return nil
}

func (s *MemoryStore) ListZaken(_ context.Context, bronorganisatie string) ([]*Zaak, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var zaken []*Zaak
	for _, zaak := range s.zaken {
		if bronorganisatie != "" && zaak.Bronorganisatie != bronorganisatie {
			continue
		}
		zaken = append(zaken, copyZaak(zaak))
	}
	return zaken, nil
}

func (s *MemoryStore) ListDeelzaken(_ context.Context, hoofdzaakID uuid.UUID) ([]*Zaak, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var zaken []*Zaak
	for _, zaak := range s.zaken {
		if zaak.HoofdzaakID != nil && *zaak.HoofdzaakID == hoofdzaakID {
			zaken = append(zaken, copyZaak(zaak))
		}
	}
	return zaken, nil
}

func (s *MemoryStore) CreateStatus(_ context.Context, status *Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := *status
	s.statussen[st.ID] = &st
	return nil
}

func (s *MemoryStore) ListStatussen(_ context.Context, zaakID uuid.UUID) ([]*Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var statussen []*Status
	for _, status := range s.statussen {
		if status.ZaakID == zaakID {
			st := *status
			statussen = append(statussen, &st)
		}
	}
	return statussen, nil
}

func (s *MemoryStore) LastStatus(_ context.Context, zaakID uuid.UUID) (*Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var last *Status
	for _, status := range s.statussen {
		if status.ZaakID != zaakID {
			continue
		}
		if last == nil || status.DatumStatusGezet.After(last.DatumStatusGezet) {
			last = status
		}
	}
	if last == nil {
		return nil, ErrNotFound
	}
	st := *last
	return &st, nil
}

func (s *MemoryStore) CreateResultaat(_ context.Context, resultaat *Resultaat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.resultaten {
		if existing.ZaakID == resultaat.ZaakID {
			return domainerrors.NewField("resultaat", domainerrors.CodeUnique, "the zaak already has a resultaat")
		}
	}
	r := *resultaat
	s.resultaten[r.ID] = &r
	return nil
}

func (s *MemoryStore) GetResultaatByZaak(_ context.Context, zaakID uuid.UUID) (*Resultaat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, resultaat := range s.resultaten {
		if resultaat.ZaakID == zaakID {
			r := *resultaat
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteResultaat(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resultaten[id]; !ok {
		return ErrNotFound
	}
	delete(s.resultaten, id)
	return nil
}

func (s *MemoryStore) CreateRol(_ context.Context, rol *Rol) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *rol
	s.rollen[r.ID] = &r
	return nil
}

func (s *MemoryStore) ListRollen(_ context.Context, zaakID uuid.UUID) ([]*Rol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rollen []*Rol
	for _, rol := range s.rollen {
		if rol.ZaakID == zaakID {
			r := *rol
			rollen = append(rollen, &r)
		}
	}
	return rollen, nil
}

func (s *MemoryStore) DeleteRol(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rollen[id]; !ok {
		return ErrNotFound
	}
	delete(s.rollen, id)
	return nil
}

func (s *MemoryStore) CreateZaakEigenschap(_ context.Context, eigenschap *ZaakEigenschap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := *eigenschap
	s.zaakeigenschappen[e.ID] = &e
	return nil
}

func (s *MemoryStore) ListZaakEigenschappen(_ context.Context, zaakID uuid.UUID) ([]*ZaakEigenschap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var eigenschappen []*ZaakEigenschap
	for _, eigenschap := range s.zaakeigenschappen {
		if eigenschap.ZaakID == zaakID {
			e := *eigenschap
			eigenschappen = append(eigenschappen, &e)
		}
	}
	return eigenschappen, nil
}

func (s *MemoryStore) CreateZaakObject(_ context.Context, zaakobject *ZaakObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := *zaakobject
	s.zaakobjecten[o.ID] = &o
	return nil
}

func (s *MemoryStore) ListZaakObjecten(_ context.Context, zaakID uuid.UUID) ([]*ZaakObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var zaakobjecten []*ZaakObject
	for _, zaakobject := range s.zaakobjecten {
		if zaakobject.ZaakID == zaakID {
			o := *zaakobject
			zaakobjecten = append(zaakobjecten, &o)
		}
	}
	return zaakobjecten, nil
}

func (s *MemoryStore) CreateBesluit(_ context.Context, besluit *Besluit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := *besluit
	s.besluiten[b.ID] = &b
	return nil
}

func (s *MemoryStore) ListBesluiten(_ context.Context, zaakID uuid.UUID) ([]*Besluit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var besluiten []*Besluit
	for _, besluit := range s.besluiten {
		if besluit.ZaakID == zaakID {
			b := *besluit
			besluiten = append(besluiten, &b)
		}
	}
	return besluiten, nil
}

func (s *MemoryStore) CreateZaakInformatieObject(_ context.Context, zio *ZaakInformatieObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	z := *zio
	s.zaakinformatieobjecten[z.ID] = &z
	return nil
}

func (s *MemoryStore) ListZaakInformatieObjecten(_ context.Context, zaakID uuid.UUID) ([]*ZaakInformatieObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var zios []*ZaakInformatieObject
	for _, zio := range s.zaakinformatieobjecten {
		if zio.ZaakID == zaakID {
			z := *zio
			zios = append(zios, &z)
		}
	}
	return zios, nil
}

func reservationKey(bronorganisatie, identificatie string) string {
	return bronorganisatie + "/" + identificatie
}

func sequenceKey(bronorganisatie string, jaar int) string {
	return fmt.Sprintf("%s/%d", bronorganisatie, jaar)
}

func (s *MemoryStore) ReserveIdentificatie(_ context.Context, bronorganisatie string, jaar int) (*ZaakIdentificatie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sequenceKey(bronorganisatie, jaar)
	s.sequences[key]++
	reservation := &ZaakIdentificatie{
		ID:              uuid.New(),
		Bronorganisatie: bronorganisatie,
		Jaar:            jaar,
		Volgnummer:      s.sequences[key],
	}
	reservation.Identificatie = FormatIdentificatie(jaar, reservation.Volgnummer)
	s.reservations[reservationKey(bronorganisatie, reservation.Identificatie)] = reservation

	out := *reservation
	return &out, nil
}

func (s *MemoryStore) ConsumeIdentificatie(_ context.Context, bronorganisatie, identificatie string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, ok := s.reservations[reservationKey(bronorganisatie, identificatie)]
	if !ok {
		return nil
	}
	if reservation.Consumed {
		return domainerrors.NewField("identificatie", domainerrors.CodeIdentificatieNietUniek,
			"the reserved identificatie has already been used")
	}
	reservation.Consumed = true
	return nil
}

package zaken

import (
	"context"

	"github.com/google/uuid"

	"zaakregister/pkg/domainerrors"
)

// ErrNotFound keeps store-level 404s consistent across implementations.
var ErrNotFound = domainerrors.New(domainerrors.CodeNotFound, "record not found")

// Store is the persistence contract for cases. All writes within a service
// operation run inside a single transaction through InTx.
type Store interface {
	// InTx runs fn atomically; nested calls join the ambient transaction.
	InTx(ctx context.Context, fn func(ctx context.Context) error) error

	CreateZaak(ctx context.Context, zaak *Zaak) error
	GetZaak(ctx context.Context, id uuid.UUID) (*Zaak, error)
	// LockZaak reads the zaak with SELECT ... FOR UPDATE semantics so status
	// writes on the same zaak serialize.
	LockZaak(ctx context.Context, id uuid.UUID) (*Zaak, error)
	UpdateZaak(ctx context.Context, zaak *Zaak) error
	DeleteZaak(ctx context.Context, id uuid.UUID) error
	ListZaken(ctx context.Context, bronorganisatie string) ([]*Zaak, error)
	ListDeelzaken(ctx context.Context, hoofdzaakID uuid.UUID) ([]*Zaak, error)

	CreateStatus(ctx context.Context, status *Status) error
	ListStatussen(ctx context.Context, zaakID uuid.UUID) ([]*Status, error)
	// LastStatus returns the most recent status by datumStatusGezet, or
	// ErrNotFound when the zaak has none.
	LastStatus(ctx context.Context, zaakID uuid.UUID) (*Status, error)

	CreateResultaat(ctx context.Context, resultaat *Resultaat) error
	GetResultaatByZaak(ctx context.Context, zaakID uuid.UUID) (*Resultaat, error)
	DeleteResultaat(ctx context.Context, id uuid.UUID) error

	CreateRol(ctx context.Context, rol *Rol) error
	ListRollen(ctx context.Context, zaakID uuid.UUID) ([]*Rol, error)
	DeleteRol(ctx context.Context, id uuid.UUID) error

	CreateZaakEigenschap(ctx context.Context, eigenschap *ZaakEigenschap) error
	ListZaakEigenschappen(ctx context.Context, zaakID uuid.UUID) ([]*ZaakEigenschap, error)

	CreateZaakObject(ctx context.Context, zaakobject *ZaakObject) error
	ListZaakObjecten(ctx context.Context, zaakID uuid.UUID) ([]*ZaakObject, error)

	CreateBesluit(ctx context.Context, besluit *Besluit) error
	ListBesluiten(ctx context.Context, zaakID uuid.UUID) ([]*Besluit, error)

	CreateZaakInformatieObject(ctx context.Context, zio *ZaakInformatieObject) error
	ListZaakInformatieObjecten(ctx context.Context, zaakID uuid.UUID) ([]*ZaakInformatieObject, error)

	// ReserveIdentificatie allocates the next case number for
	// (bronorganisatie, jaar). The allocation is atomic and gap-tolerant.
	ReserveIdentificatie(ctx context.Context, bronorganisatie string, jaar int) (*ZaakIdentificatie, error)
	// ConsumeIdentificatie marks a reservation used. A second consumption of
	// the same reservation fails with identificatie-niet-uniek. An
	// identificatie without a reservation passes through untouched.
	ConsumeIdentificatie(ctx context.Context, bronorganisatie, identificatie string) error
}

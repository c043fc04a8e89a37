package catalogi

import (
	"context"

	"github.com/google/uuid"

	"zaakregister/pkg/domainerrors"
)

// ErrNotFound keeps store-level 404s consistent across implementations.
var ErrNotFound = domainerrors.New(domainerrors.CodeNotFound, "record not found")

// Store is the persistence contract for the type graph. All writes within a
// service operation run inside a single transaction through InTx.
type Store interface {
	// InTx runs fn atomically; nested calls join the ambient transaction.
	InTx(ctx context.Context, fn func(ctx context.Context) error) error

	CreateCatalogus(ctx context.Context, catalogus *Catalogus) error
	GetCatalogus(ctx context.Context, id uuid.UUID) (*Catalogus, error)

	CreateZaaktype(ctx context.Context, zaaktype *Zaaktype) error
	GetZaaktype(ctx context.Context, id uuid.UUID) (*Zaaktype, error)
	UpdateZaaktype(ctx context.Context, zaaktype *Zaaktype) error
	// DeleteZaaktype removes the zaaktype and cascades over its subordinate
	// definitions and relations.
	DeleteZaaktype(ctx context.Context, id uuid.UUID) error
	ListZaaktypen(ctx context.Context, catalogusID uuid.UUID) ([]*Zaaktype, error)
	// ListZaaktypeVersies returns all versions sharing (catalogus, omschrijving).
	ListZaaktypeVersies(ctx context.Context, catalogusID uuid.UUID, omschrijving string) ([]*Zaaktype, error)

	CreateStatustype(ctx context.Context, statustype *Statustype) error
	GetStatustype(ctx context.Context, id uuid.UUID) (*Statustype, error)
	UpdateStatustype(ctx context.Context, statustype *Statustype) error
	DeleteStatustype(ctx context.Context, id uuid.UUID) error
	ListStatustypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*Statustype, error)

	CreateResultaattype(ctx context.Context, resultaattype *Resultaattype) error
	GetResultaattype(ctx context.Context, id uuid.UUID) (*Resultaattype, error)
	UpdateResultaattype(ctx context.Context, resultaattype *Resultaattype) error
	DeleteResultaattype(ctx context.Context, id uuid.UUID) error
	ListResultaattypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*Resultaattype, error)

	CreateRoltype(ctx context.Context, roltype *Roltype) error
	GetRoltype(ctx context.Context, id uuid.UUID) (*Roltype, error)
	UpdateRoltype(ctx context.Context, roltype *Roltype) error
	DeleteRoltype(ctx context.Context, id uuid.UUID) error
	ListRoltypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*Roltype, error)

	CreateEigenschap(ctx context.Context, eigenschap *Eigenschap) error
	GetEigenschap(ctx context.Context, id uuid.UUID) (*Eigenschap, error)
	UpdateEigenschap(ctx context.Context, eigenschap *Eigenschap) error
	DeleteEigenschap(ctx context.Context, id uuid.UUID) error
	ListEigenschappen(ctx context.Context, zaaktypeID uuid.UUID) ([]*Eigenschap, error)

	CreateZaakObjectType(ctx context.Context, zaakobjecttype *ZaakObjectType) error
	GetZaakObjectType(ctx context.Context, id uuid.UUID) (*ZaakObjectType, error)
	UpdateZaakObjectType(ctx context.Context, zaakobjecttype *ZaakObjectType) error
	DeleteZaakObjectType(ctx context.Context, id uuid.UUID) error
	ListZaakObjectTypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*ZaakObjectType, error)

	CreateInformatieObjectType(ctx context.Context, informatieobjecttype *InformatieObjectType) error
	GetInformatieObjectType(ctx context.Context, id uuid.UUID) (*InformatieObjectType, error)
	UpdateInformatieObjectType(ctx context.Context, informatieobjecttype *InformatieObjectType) error
	DeleteInformatieObjectType(ctx context.Context, id uuid.UUID) error

	CreateBesluitType(ctx context.Context, besluittype *BesluitType) error
	GetBesluitType(ctx context.Context, id uuid.UUID) (*BesluitType, error)
	UpdateBesluitType(ctx context.Context, besluittype *BesluitType) error
	DeleteBesluitType(ctx context.Context, id uuid.UUID) error
	// ListBesluitTypeVersies returns all versions sharing (catalogus, omschrijving).
	ListBesluitTypeVersies(ctx context.Context, catalogusID uuid.UUID, omschrijving string) ([]*BesluitType, error)

	CreateZaaktypeInformatieObjectType(ctx context.Context, relation *ZaaktypeInformatieObjectType) error
	GetZaaktypeInformatieObjectType(ctx context.Context, id uuid.UUID) (*ZaaktypeInformatieObjectType, error)
	DeleteZaaktypeInformatieObjectType(ctx context.Context, id uuid.UUID) error
	ListZaaktypeInformatieObjectTypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*ZaaktypeInformatieObjectType, error)
}

package service

import (
	"time"

	"github.com/google/uuid"

	"zaakregister/internal/catalogi"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/period"
)

func (s *ServiceSuite) newBesluitType(omschrijving string, begin time.Time) *catalogi.BesluitType {
	besluittype, err := s.service.CreateBesluitType(s.ctx, &catalogi.BesluitType{
		CatalogusID:     s.catalogus.ID,
		Omschrijving:    omschrijving,
		BeginGeldigheid: begin,
	})
	s.Require().NoError(err)
	return besluittype
}

func (s *ServiceSuite) newInformatieObjectType(omschrijving string) *catalogi.InformatieObjectType {
	informatieobjecttype, err := s.service.CreateInformatieObjectType(s.ctx, &catalogi.InformatieObjectType{
		CatalogusID:                 s.catalogus.ID,
		Omschrijving:                omschrijving,
		Vertrouwelijkheidaanduiding: catalogi.VertrouwelijkheidOpenbaar,
		BeginGeldigheid:             date(2018, 1, 1),
	})
	s.Require().NoError(err)
	return informatieobjecttype
}

func (s *ServiceSuite) TestRelationsStayInsideCatalogus() {
	ander, err := s.service.CreateCatalogus(s.ctx, "BUURT", "123456782")
	s.Require().NoError(err)

	zaaktype := s.newZaaktype("Vergunningaanvraag", date(2018, 1, 1))
	informatieobjecttype := s.newInformatieObjectType("Aanvraagformulier")

	s.Run("a besluittype may not relate a zaaktype of another catalogus", func() {
		_, err := s.service.CreateBesluitType(s.ctx, &catalogi.BesluitType{
			CatalogusID:     ander.ID,
			Omschrijving:    "Vergunningbesluit",
			BeginGeldigheid: date(2018, 1, 1),
			Zaaktypen:       []uuid.UUID{zaaktype.ID},
		})
		errs := domainerrors.Flatten(err)
		s.Require().Len(errs, 1)
		s.Equal("zaaktypen", errs[0].Field)
		s.Equal(domainerrors.CodeRelationsIncorrectCatalogus, errs[0].Code)
	})

	s.Run("a besluittype may not relate an informatieobjecttype of another catalogus", func() {
		_, err := s.service.CreateBesluitType(s.ctx, &catalogi.BesluitType{
			CatalogusID:           ander.ID,
			Omschrijving:          "Vergunningbesluit",
			BeginGeldigheid:       date(2018, 1, 1),
			Informatieobjecttypen: []uuid.UUID{informatieobjecttype.ID},
		})
		errs := domainerrors.Flatten(err)
		s.Require().Len(errs, 1)
		s.Equal("informatieobjecttypen", errs[0].Field)
		s.Equal(domainerrors.CodeRelationsIncorrectCatalogus, errs[0].Code)
	})

	s.Run("an update may not smuggle in a relation across catalogi", func() {
		besluittype, err := s.service.CreateBesluitType(s.ctx, &catalogi.BesluitType{
			CatalogusID:     ander.ID,
			Omschrijving:    "Handhavingsbesluit",
			BeginGeldigheid: date(2018, 1, 1),
		})
		s.Require().NoError(err)

		besluittype.Zaaktypen = []uuid.UUID{zaaktype.ID}
		_, err = s.service.UpdateBesluitType(s.ctx, besluittype)
		s.True(domainerrors.Is(err, domainerrors.CodeRelationsIncorrectCatalogus))
	})

	s.Run("a zaaktype may not relate a besluittype of another catalogus", func() {
		besluittype, err := s.service.CreateBesluitType(s.ctx, &catalogi.BesluitType{
			CatalogusID:     ander.ID,
			Omschrijving:    "Ontheffingsbesluit",
			BeginGeldigheid: date(2018, 1, 1),
		})
		s.Require().NoError(err)

		_, err = s.service.CreateZaaktype(s.ctx, &catalogi.Zaaktype{
			CatalogusID:                 s.catalogus.ID,
			Identificatie:               "ZAAKTYPE-Ontheffing",
			Omschrijving:                "Ontheffing",
			Vertrouwelijkheidaanduiding: catalogi.VertrouwelijkheidOpenbaar,
			Doorlooptijd:                period.MustParse("P30D"),
			BeginGeldigheid:             date(2018, 1, 1),
			Versiedatum:                 date(2018, 1, 1),
			SelectielijstProcestype:     procestypeURL,
			Besluittypen:                []uuid.UUID{besluittype.ID},
		})
		errs := domainerrors.Flatten(err)
		s.Require().Len(errs, 1)
		s.Equal("besluittypen", errs[0].Field)
		s.Equal(domainerrors.CodeRelationsIncorrectCatalogus, errs[0].Code)
	})

	s.Run("a zaaktype-informatieobjecttype relation needs a shared catalogus", func() {
		vreemd, err := s.service.CreateInformatieObjectType(s.ctx, &catalogi.InformatieObjectType{
			CatalogusID:                 ander.ID,
			Omschrijving:                "Besluitdocument",
			Vertrouwelijkheidaanduiding: catalogi.VertrouwelijkheidOpenbaar,
			BeginGeldigheid:             date(2018, 1, 1),
		})
		s.Require().NoError(err)

		_, err = s.service.CreateZaaktypeInformatieObjectType(s.ctx, &catalogi.ZaaktypeInformatieObjectType{
			ZaaktypeID:             zaaktype.ID,
			InformatieObjectTypeID: vreemd.ID,
			Volgnummer:             1,
		})
		s.True(domainerrors.Is(err, domainerrors.CodeRelationsIncorrectCatalogus))

		// The same relation inside one catalogus is fine.
		_, err = s.service.CreateZaaktypeInformatieObjectType(s.ctx, &catalogi.ZaaktypeInformatieObjectType{
			ZaaktypeID:             zaaktype.ID,
			InformatieObjectTypeID: informatieobjecttype.ID,
			Volgnummer:             1,
		})
		s.NoError(err)
	})
}

func (s *ServiceSuite) TestBesluitTypeGeldigheid() {
	first := s.newBesluitType("Vergunningbesluit", date(2018, 1, 1))
	_, err := s.service.PublishBesluitType(s.ctx, first.ID)
	s.Require().NoError(err)

	current, err := s.service.GetBesluitType(s.ctx, first.ID)
	s.Require().NoError(err)
	einde := date(2018, 12, 31)
	current.EindeGeldigheid = &einde
	_, err = s.service.UpdateBesluitType(s.ctx, current)
	s.Require().NoError(err)

	second := s.newBesluitType("Vergunningbesluit", date(2019, 1, 1))
	_, err = s.service.PublishBesluitType(s.ctx, second.ID)
	s.Require().NoError(err)

	s.Run("reopening the validity of a published version is rejected", func() {
		current, err := s.service.GetBesluitType(s.ctx, first.ID)
		s.Require().NoError(err)
		current.EindeGeldigheid = nil
		_, err = s.service.UpdateBesluitType(s.ctx, current)
		errs := domainerrors.Flatten(err)
		s.Require().Len(errs, 1)
		s.Equal("beginGeldigheid", errs[0].Field)
		s.Equal(domainerrors.CodeOverlap, errs[0].Code)
	})

	s.Run("shortening the validity stays allowed", func() {
		current, err := s.service.GetBesluitType(s.ctx, first.ID)
		s.Require().NoError(err)
		einde := date(2018, 6, 30)
		current.EindeGeldigheid = &einde
		updated, err := s.service.UpdateBesluitType(s.ctx, current)
		s.Require().NoError(err)
		s.Equal(einde, *updated.EindeGeldigheid)
	})

	s.Run("publication itself refuses an overlapping interval", func() {
		third := s.newBesluitType("Vergunningbesluit", date(2019, 6, 1))
		_, err := s.service.PublishBesluitType(s.ctx, third.ID)
		s.True(domainerrors.Is(err, domainerrors.CodeOverlap))
	})
}

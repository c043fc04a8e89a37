package catalogi

import (
	"zaakregister/internal/authz"
	"zaakregister/pkg/domainerrors"
)

// The concept gate is the single authority on which writes a published
// (non-concept) definition still admits. It is a pure function of the
// operation, the concept flags involved and the caller's scopes; it never
// touches persistence.

// forceWrite reports whether the caller may bypass the concept gate.
func forceWrite(scopes authz.Scopes) bool {
	return scopes.Has(authz.ScopeCatalogiGeforceerdBijwerken)
}

// GateCreateSubordinate gates creating a subordinate definition (statustype,
// resultaattype, roltype, eigenschap, zaakobjecttype) under a zaaktype.
func GateCreateSubordinate(parentConcept bool, scopes authz.Scopes) error {
	if parentConcept || forceWrite(scopes) {
		return nil
	}
	return domainerrors.New(domainerrors.CodeNonConceptObject,
		"creating a subordinate of a published zaaktype is not allowed")
}

// GateUpdate gates update and partial update of a definition. Changing only
// eindeGeldigheid is always allowed; the overlap check happens separately.
func GateUpdate(entityConcept, onlyEindeGeldigheid bool, scopes authz.Scopes) error {
	if entityConcept || onlyEindeGeldigheid || forceWrite(scopes) {
		return nil
	}
	return domainerrors.New(domainerrors.CodeNonConceptObject,
		"updating a published definition is not allowed")
}

// GateUpdateSubordinate gates writes on a subordinate whose owning zaaktype
// is published.
func GateUpdateSubordinate(parentConcept bool, scopes authz.Scopes) error {
	if parentConcept || forceWrite(scopes) {
		return nil
	}
	return domainerrors.New(domainerrors.CodeNonConceptObject,
		"updating a subordinate of a published zaaktype is not allowed")
}

// GateDelete gates deleting a definition. A published definition only goes
// away through a forced cascade delete.
func GateDelete(entityConcept bool, scopes authz.Scopes) error {
	if entityConcept || forceWrite(scopes) {
		return nil
	}
	return domainerrors.New(domainerrors.CodeNonConceptObject,
		"deleting a published definition requires the forced-update scope")
}

// GateRelateOnCreate gates creating a concept definition that relates to
// published neighbours.
func GateRelateOnCreate(entityConcept bool, neighbourConcepts []bool, scopes authz.Scopes) error {
	if !entityConcept || forceWrite(scopes) {
		return nil
	}
	for _, neighbourConcept := range neighbourConcepts {
		if !neighbourConcept {
			return domainerrors.New(domainerrors.CodeNonConceptRelation,
				"relations to published definitions cannot be created on a concept")
		}
	}
	return nil
}

// GateRelateOnUpdate gates adding relations to published neighbours during an
// update. Updates touching only eindeGeldigheid bypass the gate.
func GateRelateOnUpdate(neighbourConcepts []bool, onlyEindeGeldigheid bool, scopes authz.Scopes) error {
	if onlyEindeGeldigheid || forceWrite(scopes) {
		return nil
	}
	for _, neighbourConcept := range neighbourConcepts {
		if !neighbourConcept {
			return domainerrors.New(domainerrors.CodeNonConceptRelation,
				"updates may not introduce relations to published definitions")
		}
	}
	return nil
}

// GateDeleteWithRelations gates deleting a concept definition that is still
// related to published neighbours.
func GateDeleteWithRelations(neighbourConcepts []bool, scopes authz.Scopes) error {
	if forceWrite(scopes) {
		return nil
	}
	for _, neighbourConcept := range neighbourConcepts {
		if !neighbourConcept {
			return domainerrors.New(domainerrors.CodeNonConceptRelation,
				"the definition is related to a published definition")
		}
	}
	return nil
}

// GateZaaktypeInformatieObjectTypeDelete gates removing a
// zaaktype-informatieobjecttype relation: allowed unless both sides are
// published. Creation of the relation is always allowed.
func GateZaaktypeInformatieObjectTypeDelete(zaaktypeConcept, informatieobjecttypeConcept bool, scopes authz.Scopes) error {
	if zaaktypeConcept || informatieobjecttypeConcept || forceWrite(scopes) {
		return nil
	}
	return domainerrors.New(domainerrors.CodeNonConceptRelation,
		"the relation between two published definitions cannot be removed")
}

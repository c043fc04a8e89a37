// Package notificaties publishes domain events to subscribed applications.
// Events are transport-agnostic; the kafka publisher is the production sink
// and an in-memory sink backs tests.
package notificaties

import (
	"context"
	"time"
)

// Kanalen group events per component.
const (
	KanaalZaken     = "zaken"
	KanaalZaaktypen = "zaaktypen"
)

// Acties describe what happened to the resource.
const (
	ActieCreate  = "create"
	ActieUpdate  = "update"
	ActieDestroy = "destroy"
	ActiePublish = "publish"
)

// Event is emitted from domain logic after a state change committed.
type Event struct {
	Kanaal       string            `json:"kanaal"`
	Hoofdobject  string            `json:"hoofdObject"`
	Resource     string            `json:"resource"`
	ResourceID   string            `json:"resourceId"`
	Actie        string            `json:"actie"`
	Aanmaakdatum time.Time         `json:"aanmaakdatum"`
	Kenmerken    map[string]string `json:"kenmerken,omitempty"`
}

// Publisher delivers events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

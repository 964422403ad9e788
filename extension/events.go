// events.go defines the notifications sent after the corpus changes.
//
// Events are fire-and-forget: handlers observe after the fact and cannot
// veto the change.

package extension

import "errors"

// EventType identifies the kind of event.
type EventType string

const (
	EventTranslationImport EventType = "translation:import"
	EventTranslationDelete EventType = "translation:delete"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	// EventTranslation returns the abbreviation the event concerns.
	EventTranslation() string
}

// TranslationImportEvent is fired after a translation is written.
type TranslationImportEvent struct {
	Abbrev string
	Source string // file the translation was read from
	Verses int64
}

func (e TranslationImportEvent) EventType() EventType     { return EventTranslationImport }
func (e TranslationImportEvent) EventTranslation() string { return e.Abbrev }

// TranslationDeleteEvent is fired after a translation and its texts are
// removed.
type TranslationDeleteEvent struct {
	Abbrev string
	Texts  int64
}

func (e TranslationDeleteEvent) EventType() EventType     { return EventTranslationDelete }
func (e TranslationDeleteEvent) EventTranslation() string { return e.Abbrev }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}

// Dispatch delivers e to every registered EventHandler. Handler errors are
// joined; one failing handler does not stop the others.
func Dispatch(ctx Context, e Event) error {
	var errs []error
	for _, ext := range All() {
		if h, ok := ext.(EventHandler); ok {
			if err := h.HandleEvent(ctx, e); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

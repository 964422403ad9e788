package extension

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

// testExtension is a minimal Extension implementation for testing.
type testExtension struct {
	name string
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }
func (e testExtension) MCPTools() []MCPTool        { return nil }

// recorder collects the events it is sent.
type recorder struct {
	testExtension
	seen []Event
	err  error
}

func (r *recorder) HandleEvent(_ Context, e Event) error {
	r.seen = append(r.seen, e)
	return r.err
}

func TestRegister_PanicOnDuplicate(t *testing.T) {
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	assert.Panics(t, func() { Register(testExtension{name: name}) })
	assert.Contains(t, Names(), name)
}

func TestDispatch(t *testing.T) {
	ok := &recorder{testExtension: testExtension{name: "test-dispatch-ok"}}
	failing := &recorder{testExtension: testExtension{name: "test-dispatch-fail"}, err: errors.New("boom")}
	Register(ok)
	Register(failing)

	err := Dispatch(NewContext(nil, nil, nil), TranslationDeleteEvent{Abbrev: "KJV", Texts: 3})
	assert.ErrorContains(t, err, "boom")

	for _, r := range []*recorder{ok, failing} {
		if assert.Len(t, r.seen, 1) {
			assert.Equal(t, EventTranslationDelete, r.seen[0].EventType())
			assert.Equal(t, "KJV", r.seen[0].EventTranslation())
		}
	}
}

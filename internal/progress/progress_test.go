package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressLive(t *testing.T) {
	var buf bytes.Buffer
	p := NewWriter(&buf, true, "Importing", 4)
	p.Increment()
	p.Print()
	assert.Equal(t, "\rImporting... 1/4 (25%)", buf.String())

	buf.Reset()
	p.Done()
	assert.Equal(t, "\r                      \r", buf.String())
	assert.Equal(t, 1, p.Current())
}

func TestProgressQuiet(t *testing.T) {
	var buf bytes.Buffer

	p := NewWriter(&buf, false, "Importing", 10)
	p.Increment()
	p.Print()
	p.Done()
	assert.Empty(t, buf.String())

	small := NewWriter(&buf, true, "Importing", 1)
	small.Increment()
	small.Print()
	small.Done()
	assert.Empty(t, buf.String())
}

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv("SD_DEBUG", "")
	assert.False(t, DebugEnabled(), "empty SD_DEBUG disables debug output")

	t.Setenv("SD_DEBUG", "1")
	assert.True(t, DebugEnabled())
}

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	t.Setenv("SD_DEBUG", "")
	Debugf("hidden %s\n", "line")
	assert.Empty(t, buf.String())

	t.Setenv("SD_DEBUG", "1")
	Debugf("visible %s\n", "line")
	assert.Equal(t, "visible line\n", buf.String())
}

func TestDebugln(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	t.Setenv("SD_DEBUG", "true")
	Debugln("renamed", 3, "tasks")
	assert.Equal(t, "renamed 3 tasks\n", buf.String())
}

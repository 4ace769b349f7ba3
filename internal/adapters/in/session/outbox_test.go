package session

import (
	"testing"

	"cafe/internal/core/application/sessions"

	"github.com/stretchr/testify/assert"
)

func TestOutbox_DropsWhenFull(t *testing.T) {
	out := newOutbox(2)
	event := sessions.Event{Kind: sessions.EventOrderReady, Identity: "alice"}

	assert.True(t, out.Deliver(event))
	assert.True(t, out.Deliver(event))
	assert.False(t, out.Deliver(event))
}

func TestOutbox_DropsAfterClose(t *testing.T) {
	out := newOutbox(2)
	out.close()
	out.close()

	assert.False(t, out.Deliver(sessions.Event{Kind: sessions.EventOrderReady, Identity: "alice"}))
}

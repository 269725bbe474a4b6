package server_test

import (
	"testing"

	"discover/models"
	"discover/server"

	"github.com/stretchr/testify/assert"
)

func TestBroadcaster(t *testing.T) {
	bc := server.NewBroadcaster()
	ready := make(chan models.RefreshEvent, 1)
	full := make(chan models.RefreshEvent)
	bc.AddClient("ready", ready)
	bc.AddClient("full", full)
	assert.Equal(t, 2, bc.Count())

	// Must not block on the unbuffered client
	bc.BroadcastRefresh(models.RefreshEvent{Rows: []models.Row{{PackageName: "a"}}})
	evt := <-ready
	assert.Equal(t, "a", evt.Rows[0].PackageName)

	bc.RemoveClient("ready")
	bc.RemoveClient("ready")
	_, open := <-ready
	assert.False(t, open)
	assert.Equal(t, 1, bc.Count())

	bc.Shutdown()
	_, open = <-full
	assert.False(t, open)
	assert.Equal(t, 0, bc.Count())
}

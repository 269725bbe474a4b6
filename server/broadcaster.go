package server

import (
	"sync"

	"discover/models"

	log "github.com/sirupsen/logrus"
)

// Broadcaster fans refresh events out to SSE clients
type Broadcaster struct {
	sync.RWMutex
	clients map[string]chan models.RefreshEvent
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[string]chan models.RefreshEvent),
	}
}

// BroadcastRefresh sends evt to every client without blocking
func (b *Broadcaster) BroadcastRefresh(evt models.RefreshEvent) {
	b.RLock()
	defer b.RUnlock()

	for id, client := range b.clients {
		select {
		case client <- evt:
		default:
			log.Warnf("Client channel full, skipping refresh for client: %v", id)
		}
	}
}

func (b *Broadcaster) AddClient(key string, client chan models.RefreshEvent) {
	b.Lock()
	defer b.Unlock()
	b.clients[key] = client
	log.WithFields(log.Fields{
		"key":   key,
		"count": len(b.clients),
	}).Info("Adding client to broadcaster")
}

// RemoveClient closes and forgets the client channel. Unknown keys are ignored.
func (b *Broadcaster) RemoveClient(key string) {
	b.Lock()
	defer b.Unlock()

	client, ok := b.clients[key]
	if !ok {
		return
	}
	close(client)
	delete(b.clients, key)

	log.WithFields(log.Fields{
		"key":   key,
		"count": len(b.clients),
	}).Info("Removed client from broadcaster")
}

func (b *Broadcaster) Count() int {
	b.RLock()
	defer b.RUnlock()
	return len(b.clients)
}

func (b *Broadcaster) Shutdown() {
	log.Info("Shutting down broadcaster")
	b.Lock()
	defer b.Unlock()
	for key, client := range b.clients {
		close(client)
		delete(b.clients, key)
	}
}

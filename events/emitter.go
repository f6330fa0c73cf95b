package events

import (
	"log"
	"sync"
)

// Index describes the entity a state change touched.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}

type Handler func(eventName string, content Index)

var (
	mu       sync.Mutex
	handlers []Handler
)

// Subscribe registers a handler for every emitted event. The hosting UI uses
// this to refresh views after mutations.
func Subscribe(h Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers = append(handlers, h)
}

// Emit notifies subscribers of an entity change.
func Emit(eventName string, content Index) error {
	mu.Lock()
	subs := make([]Handler, len(handlers))
	copy(subs, handlers)
	mu.Unlock()

	log.Printf("[EVENT] %s %s/%s %s", eventName, content.EntityType, content.Method, content.EntityId)
	for _, h := range subs {
		h(eventName, content)
	}
	return nil
}

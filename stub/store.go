// Package stub is an in-memory implementation of the recipe service
// contract, used as the integration-test fixture and as a local dev backend.
package stub

import (
	"sync"

	"forkful/models"
)

type userRecord struct {
	models.User
	PasswordHash []byte
}

// Store holds all stub state behind one lock.
type Store struct {
	mu        sync.Mutex
	users     map[string]*userRecord       // by user id
	emails    map[string]string            // email -> user id
	recipes   map[string]*models.Recipe    // by recipe id
	comments  map[string][]models.Comment  // by recipe id, newest first
	favorites map[string]map[string]bool   // user id -> recipe id -> true
	uploads   map[string][]byte            // public id -> bytes
}

func newStore() *Store {
	return &Store{
		users:     make(map[string]*userRecord),
		emails:    make(map[string]string),
		recipes:   make(map[string]*models.Recipe),
		comments:  make(map[string][]models.Comment),
		favorites: make(map[string]map[string]bool),
		uploads:   make(map[string][]byte),
	}
}

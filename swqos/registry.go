package swqos

import (
	"sync"

	"github.com/sirupsen/logrus"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
	"github.com/hookenful/sol-trade-sdk/common/types"
)

// Registry holds the configured submission channels keyed by vendor type.
// It is populated once at client construction and read concurrently by
// every trade after that.
type Registry struct {
	logger       *logrus.Logger
	clients      map[types.SwqosType]types.SwqosClient
	order        []types.SwqosType
	clientsMutex sync.RWMutex
}

func NewRegistry(logger *logrus.Logger) *Registry {
	return &Registry{
		clients: make(map[types.SwqosType]types.SwqosClient),
		logger:  logger,
	}
}

// Add registers a channel, replacing any existing channel of the same type.
func (r *Registry) Add(client types.SwqosClient) {
	r.clientsMutex.Lock()
	if _, exists := r.clients[client.SwqosType()]; !exists {
		r.order = append(r.order, client.SwqosType())
	}
	r.clients[client.SwqosType()] = client
	r.clientsMutex.Unlock()

	r.logger.WithField("swqos", client.SwqosType()).Info("Swqos channel registered")
}

// Get returns the channel of the given type, or nil.
func (r *Registry) Get(swqosType types.SwqosType) types.SwqosClient {
	r.clientsMutex.RLock()
	client := r.clients[swqosType]
	r.clientsMutex.RUnlock()
	return client
}

// Default returns the direct-RPC channel when one is registered.
func (r *Registry) Default() (types.SwqosClient, error) {
	client := r.Get(types.SwqosTypeDefault)
	if client == nil {
		return nil, cerrors.ErrNoDefaultSwqos
	}
	return client, nil
}

// All returns the registered channels in registration order.
func (r *Registry) All() []types.SwqosClient {
	r.clientsMutex.RLock()
	defer r.clientsMutex.RUnlock()

	clients := make([]types.SwqosClient, 0, len(r.clients))
	for _, swqosType := range r.order {
		clients = append(clients, r.clients[swqosType])
	}
	return clients
}

// Remove drops a channel from the registry.
func (r *Registry) Remove(swqosType types.SwqosType) {
	r.clientsMutex.Lock()
	defer r.clientsMutex.Unlock()

	delete(r.clients, swqosType)
	for i, t := range r.order {
		if t == swqosType {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

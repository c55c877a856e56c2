package swqos

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
	"github.com/hookenful/sol-trade-sdk/common/types"
)

// NewSwqosClient constructs one submission channel from its config. The
// status provider backs the optional wait-for-confirmation path of relay
// channels; the default channel carries its own RPC connection.
func NewSwqosClient(config types.SwqosConfig, status types.SignatureStatusProvider, logger *logrus.Logger) (types.SwqosClient, error) {
	if config.Endpoint == "" {
		return nil, errors.Wrapf(cerrors.ErrEndpointNotConfigured, "swqos type %s", config.Type)
	}

	switch config.Type {
	case types.SwqosTypeDefault:
		return NewDefaultClient(config.Endpoint, logger), nil
	case types.SwqosTypeJito:
		return NewJitoClient(config.Endpoint, status, logger), nil
	case types.SwqosTypeHelius:
		return NewHeliusClient(config.Endpoint, config.SwqosOnly, status, logger), nil
	case types.SwqosTypeNextBlock:
		return NewNextBlockClient(config.Endpoint, config.AuthToken, status, logger), nil
	case types.SwqosTypeBloxroute:
		return NewBloxrouteClient(config.Endpoint, config.AuthToken, status, logger), nil
	default:
		return nil, errors.Wrapf(cerrors.ErrUnknownSwqosType, "swqos type %s", config.Type)
	}
}

// BuildRegistry constructs channels for every config and registers them.
// Construction is all-or-nothing so a misconfigured channel surfaces at
// startup instead of mid-trade.
func BuildRegistry(configs []types.SwqosConfig, status types.SignatureStatusProvider, logger *logrus.Logger) (*Registry, error) {
	registry := NewRegistry(logger)
	for _, config := range configs {
		client, err := NewSwqosClient(config, status, logger)
		if err != nil {
			return nil, err
		}
		registry.Add(client)
	}
	return registry, nil
}

package swqos

import (
	"context"
	"testing"

	sol "github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
	"github.com/hookenful/sol-trade-sdk/common/types"
)

type stubClient struct {
	typ types.SwqosType
}

func (s *stubClient) SendTransaction(context.Context, types.TradeType, *sol.Transaction, bool) error {
	return nil
}
func (s *stubClient) TipAccount() (string, error) { return "", nil }
func (s *stubClient) MinTipSol() float64          { return 0 }
func (s *stubClient) SwqosType() types.SwqosType  { return s.typ }

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestRegistryPreservesOrder(t *testing.T) {
	registry := NewRegistry(testLogger())
	registry.Add(&stubClient{typ: types.SwqosTypeJito})
	registry.Add(&stubClient{typ: types.SwqosTypeDefault})
	registry.Add(&stubClient{typ: types.SwqosTypeHelius})

	all := registry.All()
	require.Len(t, all, 3)
	assert.Equal(t, types.SwqosTypeJito, all[0].SwqosType())
	assert.Equal(t, types.SwqosTypeDefault, all[1].SwqosType())
	assert.Equal(t, types.SwqosTypeHelius, all[2].SwqosType())
}

func TestRegistryReplaceKeepsPosition(t *testing.T) {
	registry := NewRegistry(testLogger())
	first := &stubClient{typ: types.SwqosTypeJito}
	second := &stubClient{typ: types.SwqosTypeJito}
	registry.Add(first)
	registry.Add(&stubClient{typ: types.SwqosTypeDefault})
	registry.Add(second)

	all := registry.All()
	require.Len(t, all, 2)
	assert.Same(t, second, all[0].(*stubClient))
}

func TestRegistryDefault(t *testing.T) {
	registry := NewRegistry(testLogger())

	_, err := registry.Default()
	assert.ErrorIs(t, err, cerrors.ErrNoDefaultSwqos)

	registry.Add(&stubClient{typ: types.SwqosTypeDefault})
	client, err := registry.Default()
	require.NoError(t, err)
	assert.Equal(t, types.SwqosTypeDefault, client.SwqosType())
}

func TestRegistryRemove(t *testing.T) {
	registry := NewRegistry(testLogger())
	registry.Add(&stubClient{typ: types.SwqosTypeJito})
	registry.Add(&stubClient{typ: types.SwqosTypeDefault})

	registry.Remove(types.SwqosTypeJito)
	all := registry.All()
	require.Len(t, all, 1)
	assert.Equal(t, types.SwqosTypeDefault, all[0].SwqosType())
}

func TestFactoryRejectsUnknownType(t *testing.T) {
	_, err := NewSwqosClient(types.SwqosConfig{Type: "Bogus", Endpoint: "http://localhost"}, nil, testLogger())
	assert.ErrorIs(t, err, cerrors.ErrUnknownSwqosType)
}

func TestFactoryRejectsMissingEndpoint(t *testing.T) {
	_, err := NewSwqosClient(types.SwqosConfig{Type: types.SwqosTypeJito}, nil, testLogger())
	assert.ErrorIs(t, err, cerrors.ErrEndpointNotConfigured)
}

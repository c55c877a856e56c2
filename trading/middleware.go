package trading

import (
	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// InstructionMiddleware transforms the protocol instruction list before
// transaction assembly. Middlewares run in registration order; each receives
// the output of the previous one.
type InstructionMiddleware interface {
	Name() string
	Process(instructions []sol.Instruction, protocolName string, isBuy bool) ([]sol.Instruction, error)
}

// MiddlewareManager holds an ordered chain of instruction middlewares.
type MiddlewareManager struct {
	middlewares []InstructionMiddleware
}

func NewMiddlewareManager(middlewares ...InstructionMiddleware) *MiddlewareManager {
	return &MiddlewareManager{middlewares: middlewares}
}

// Add appends a middleware to the end of the chain.
func (m *MiddlewareManager) Add(middleware InstructionMiddleware) {
	m.middlewares = append(m.middlewares, middleware)
}

// Apply runs every middleware over the instruction list in order.
func (m *MiddlewareManager) Apply(instructions []sol.Instruction, protocolName string, isBuy bool) ([]sol.Instruction, error) {
	if m == nil {
		return instructions, nil
	}

	var err error
	for _, middleware := range m.middlewares {
		instructions, err = middleware.Process(instructions, protocolName, isBuy)
		if err != nil {
			return nil, errors.Wrapf(err, "middleware %s failed", middleware.Name())
		}
	}
	return instructions, nil
}

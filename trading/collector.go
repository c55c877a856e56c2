package trading

import (
	"context"
	"sync/atomic"
	"time"

	sol "github.com/gagliardetto/solana-go"

	"github.com/hookenful/sol-trade-sdk/common/types"
)

const (
	// successWaitTimeout bounds the confirmation-oriented wait.
	successWaitTimeout = 5 * time.Second
	// successPollInterval is the tick of the confirmation-oriented wait.
	successPollInterval = time.Second
	// submitPollInterval is the tick of the submission-only wait. Tight,
	// since submission round-trips are fast and a coarse tick would inflate
	// the reported submit latency of the last channel.
	submitPollInterval = 2 * time.Millisecond
)

// taskResult is produced by exactly one submission task upon completion and
// handed to the collector by value, never shared or mutated afterwards.
type taskResult struct {
	success   bool
	signature sol.Signature
	err       error
	swqosType types.SwqosType
	// landedOnChain marks a transaction that reached the chain, consuming
	// its nonce, whether or not the program accepted it.
	landedOnChain bool
	// submitDoneUs is the microsecond timestamp when the task finished.
	submitDoneUs int64
}

// resultCollector aggregates task results for one trade call. Every spawned
// task reports exactly once; the collector decides when the trade is done by
// evaluating, on each poll tick, the first satisfied rule: success seen,
// landed-but-failed seen, all tasks completed, timeout.
//
// The queue is a buffered channel sized exactly to the task count, so
// producers can never block. Flags are set after the corresponding result is
// queued, so a poller observing a flag always finds the result behind it.
type resultCollector struct {
	results        chan taskResult
	successFlag    atomic.Bool
	landedFailFlag atomic.Bool
	completedCount atomic.Int64
	totalTasks     int
}

func newResultCollector(totalTasks int) *resultCollector {
	return &resultCollector{
		results:    make(chan taskResult, totalTasks),
		totalTasks: totalTasks,
	}
}

// submit records one task outcome. Must be called exactly once per task.
func (c *resultCollector) submit(result taskResult) {
	select {
	case c.results <- result:
	default:
		// Capacity equals the task count, so this branch is unreachable
		// unless a task reported twice.
	}

	if result.success {
		c.successFlag.Store(true)
	} else if result.landedOnChain {
		c.landedFailFlag.Store(true)
	}

	c.completedCount.Add(1)
}

// drained is a point-in-time read of everything queued so far.
type drained struct {
	signatures  []sol.Signature
	timings     []types.SubmitTiming
	hasSuccess  bool
	landedError error
	lastError   error
}

func (c *resultCollector) drain() drained {
	var d drained
	for {
		select {
		case result := <-c.results:
			d.signatures = append(d.signatures, result.signature)
			d.timings = append(d.timings, types.SubmitTiming{SwqosType: result.swqosType, DoneAtUs: result.submitDoneUs})
			if result.success {
				d.hasSuccess = true
			}
			if result.err != nil {
				d.lastError = result.err
				if result.landedOnChain {
					d.landedError = result.err
				}
			}
		default:
			return d
		}
	}
}

// waitForSuccess polls until a decision rule fires, bounded at 5 seconds.
// Returns nil when no rule resolves in time.
func (c *resultCollector) waitForSuccess(ctx context.Context) *types.TradeResult {
	start := time.Now()

	for {
		if c.successFlag.Load() {
			d := c.drain()
			if d.hasSuccess && len(d.signatures) > 0 {
				return &types.TradeResult{Success: true, Signatures: d.signatures, Timings: d.timings}
			}
		}

		// A landed-but-failed transaction consumed the shared nonce; no
		// sibling can succeed anymore, so waiting further is pure waste.
		if c.landedFailFlag.Load() {
			d := c.drain()
			if len(d.signatures) > 0 {
				err := d.landedError
				if err == nil {
					err = d.lastError
				}
				return &types.TradeResult{Success: false, Signatures: d.signatures, Err: err, Timings: d.timings}
			}
		}

		if c.completedCount.Load() >= int64(c.totalTasks) {
			d := c.drain()
			if len(d.signatures) > 0 {
				return &types.TradeResult{Success: d.hasSuccess, Signatures: d.signatures, Err: d.lastError, Timings: d.timings}
			}
			return nil
		}

		if time.Since(start) > successWaitTimeout {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(successPollInterval):
		}
	}
}

// waitForAllSubmitted waits until every task has finished its submission
// attempt (not confirmation), bounded by timeout, then returns whatever was
// collected with a first-success-preferring read. Returns nil when nothing
// was collected at all.
func (c *resultCollector) waitForAllSubmitted(ctx context.Context, timeout time.Duration) *types.TradeResult {
	start := time.Now()

	for c.completedCount.Load() < int64(c.totalTasks) {
		if time.Since(start) > timeout {
			break
		}
		select {
		case <-ctx.Done():
			return c.getFirst()
		case <-time.After(submitPollInterval):
		}
	}
	return c.getFirst()
}

// getFirst drains the queue and reports success when any task succeeded.
func (c *resultCollector) getFirst() *types.TradeResult {
	d := c.drain()
	if len(d.signatures) == 0 {
		return nil
	}
	return &types.TradeResult{Success: d.hasSuccess, Signatures: d.signatures, Err: d.lastError, Timings: d.timings}
}

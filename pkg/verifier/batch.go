package verifier

import (
	"context"
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mahdiidarabi/sigma-proofs/pkg/sigma"
)

// Case is one signature to check.
type Case struct {
	Name        string
	Proposition sigma.SigmaBoolean
	Proof       sigma.ProofBytes
	Message     []byte
}

// Result is the outcome of one Case. Err is set when the proof could not be
// parsed or the case was not run because ctx was canceled.
type Result struct {
	Index int
	Name  string
	Valid bool
	Err   error
}

// VerifyBatch verifies independent cases on up to Config.NumWorkers
// goroutines. Results are in the order of cases. The returned error is
// non-nil only when ctx is done before every case ran; results of cases that
// did not run carry the context error.
func (v *Verifier) VerifyBatch(ctx context.Context, cases []*Case) ([]Result, error) {
	numWorkers := v.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	results := make([]Result, len(cases))
	var verified, valid int64

	var g errgroup.Group
	g.SetLimit(numWorkers)
	for i, c := range cases {
		results[i] = Result{Index: i}
		if c == nil {
			results[i].Err = sigma.ErrInvariantViolation
			continue
		}
		results[i].Name = c.Name

		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			ok, err := v.VerifySignature(c.Proposition, c.Proof, c.Message)
			results[i].Valid = ok
			results[i].Err = err
			atomic.AddInt64(&verified, 1)
			if ok {
				atomic.AddInt64(&valid, 1)
			}
			return nil
		})
	}
	_ = g.Wait()

	v.log.Debug("batch verified",
		zap.Int("cases", len(cases)),
		zap.Int64("verified", atomic.LoadInt64(&verified)),
		zap.Int64("valid", atomic.LoadInt64(&valid)),
		zap.Int("workers", numWorkers),
	)
	return results, ctx.Err()
}

package garden

import "context"

// optimistic runs the three-phase mutation protocol: apply assigns the
// tentative in-memory state and returns the inverse that restores the
// snapshot; persist makes it durable. On persist failure the inverse runs and
// the error propagates. The caller parameterizes the mutation and its
// inverse instead of re-implementing the protocol per call site.
func optimistic(ctx context.Context, apply func() (revert func(), err error), persist func(context.Context) error) error {
	revert, err := apply()
	if err != nil {
		return err
	}

	if err := persist(ctx); err != nil {
		revert()
		return err
	}

	return nil
}

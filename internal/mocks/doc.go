// Package mocks provides hand-written test doubles for the interfaces used
// across the service.
//
// Each mock has a function field per method for custom behavior, default
// return values for the common case, and mutex-guarded call tracking:
//
//	gen := &mocks.MockGenerator{
//	    GenerateFn: func(ctx context.Context, notes string) ([]domain.CardDraft, error) {
//	        return nil, generation.ErrNoUsableCards
//	    },
//	}
package mocks

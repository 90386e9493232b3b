package router

import "context"

type stateKey struct{}

type requestState struct {
	response any
	err      error
}

func withState(ctx context.Context) (context.Context, *requestState) {
	state := &requestState{}
	return context.WithValue(ctx, stateKey{}, state), state
}

func getState(ctx context.Context) *requestState {
	state, ok := ctx.Value(stateKey{}).(*requestState)
	if !ok {
		return &requestState{}
	}

	return state
}

// GetError returns the error which stopped the request, if any.
func GetError(ctx context.Context) error {
	return getState(ctx).err
}

package table

import "context"

type seatHintKey struct{}

// WithSeatHint returns a context carrying the seat a connection asked for
// up front, such as an ssh user name.
func WithSeatHint(ctx context.Context, seat string) context.Context {
	return context.WithValue(ctx, seatHintKey{}, seat)
}

func seatHint(ctx context.Context) string {
	seat, _ := ctx.Value(seatHintKey{}).(string)
	return seat
}

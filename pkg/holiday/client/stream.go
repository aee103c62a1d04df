package client

import (
	"context"
	"iter"
	"sync/atomic"

	"feiertage/pkg/holiday"
)

// Holidays returns a pull-based sequence over the holidays matching req.
//
// Nothing is fetched until the first pull, which performs a full Fetch. A
// failure is yielded once as the error of a zero Holiday and ends the
// sequence. ctx is checked before each element; on cancellation the
// sequence ends with ctx.Err(). The sequence can be ranged over once;
// later iterations yield ErrSequenceConsumed.
func (c *Client) Holidays(ctx context.Context, req holiday.Request) iter.Seq2[holiday.Holiday, error] {
	var consumed atomic.Bool
	return func(yield func(holiday.Holiday, error) bool) {
		if !consumed.CompareAndSwap(false, true) {
			yield(holiday.Holiday{}, ErrSequenceConsumed)
			return
		}

		resp, err := c.Fetch(ctx, req)
		if err != nil {
			yield(holiday.Holiday{}, err)
			return
		}

		for _, h := range resp.Holidays {
			if err := ctx.Err(); err != nil {
				yield(holiday.Holiday{}, err)
				return
			}
			if !yield(h, nil) {
				return
			}
		}
	}
}

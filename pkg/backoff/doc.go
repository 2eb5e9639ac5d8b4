// Package backoff computes exponential retry delays with jitter.
//
// The defaults suit Bluetooth LE connection attempts, which often fail
// once while the peripheral is between advertising intervals:
//
//	0.5s, 1s, 2s, 4s, 5s, 5s...
//
// each extended by up to 25% random jitter.
//
// Retry wraps an operation that may fail transiently:
//
//	err := backoff.Retry(ctx, 3, backoff.Config{}, isConnectError,
//	    func(ctx context.Context) error { return svc.SetTime(ctx, c, nil, mode) })
package backoff

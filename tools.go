//go:build tools

package clocks

// Mocks in pkg/transport/mocks are generated by an installed mockery
// binary from .mockery.yaml. Run: mockery

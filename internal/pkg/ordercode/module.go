package ordercode

import "go.uber.org/fx"

// Module provides the order-code generator via fx.
var Module = fx.Provide(
	func() Generator { return NewUUIDGenerator() },
)

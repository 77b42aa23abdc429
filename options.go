package fsa

import "go.uber.org/zap"

// DefaultDeterminizeWorkLimit is the default maximum number of subsets
// ConvertNFAtoDFA will materialize.
const DefaultDeterminizeWorkLimit = 10000

type options struct {
	logger         *zap.Logger
	workLimit      int
	epsilonClosure bool
}

// Option configures an engine operation.
type Option func(*options)

func newOptions(opts ...Option) *options {
	o := &options{
		logger:    zap.NewNop(),
		workLimit: DefaultDeterminizeWorkLimit,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger operations report progress to at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkLimit bounds the number of subsets ConvertNFAtoDFA may create.
// A limit <= 0 disables the bound.
func WithWorkLimit(limit int) Option {
	return func(o *options) {
		o.workLimit = limit
	}
}

// WithEpsilonClosure makes ConvertNFAtoDFA and IsWordAccepted follow epsilon
// edges: every state set is closed under epsilon before the first symbol and
// after each symbol step.
//
// Without this option epsilon edges are ignored, which is the historical
// behaviour of these operations. Enabling it changes the accepted language of
// any NFA that has epsilon edges.
func WithEpsilonClosure() Option {
	return func(o *options) {
		o.epsilonClosure = true
	}
}

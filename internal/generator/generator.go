//go:generate mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks

package generator

// Record is one generated artifact: a mapping of field names to values.
type Record map[string]string

// Generator produces records. Implementations are not required to be safe
// for concurrent use; each worker unit owns its instances.
type Generator interface {
	// Generate returns one freshly generated record.
	Generate() (Record, error)
}

// Factory constructs Generator instances from a configuration.
type Factory interface {
	// New returns a generator configured by opts. A nil opts selects the
	// default configuration.
	New(opts *Options) (Generator, error)
}

// FactoryFunc is a function adapter that implements Factory.
type FactoryFunc func(opts *Options) (Generator, error)

// New calls the underlying function.
func (f FactoryFunc) New(opts *Options) (Generator, error) {
	return f(opts)
}

// NewDefaultFactory returns the factory producing HeaderGenerator instances.
func NewDefaultFactory() Factory {
	return FactoryFunc(func(opts *Options) (Generator, error) {
		return NewHeaderGenerator(opts)
	})
}

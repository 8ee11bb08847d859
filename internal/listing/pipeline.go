package listing

// Pipeline filters then sorts an immutable source collection. It holds no
// state besides its inputs, so one pipeline may serve concurrent callers.
type Pipeline[T any] struct {
	source []T
	filter Filter[T]
	sorter Sorter[T]
}

// NewPipeline copies source; its order defines ModeCode.
func NewPipeline[T any](source []T, profile Profile[T]) *Pipeline[T] {
	owned := append([]T(nil), source...)

	return &Pipeline[T]{
		source: owned,
		filter: NewFilter(profile),
		sorter: NewSorter(profile, owned),
	}
}

// Refresh returns the records matching criteria, ordered by mode.
func (p *Pipeline[T]) Refresh(criteria Criteria, mode Mode) []T {
	return p.sorter.Apply(p.filter.Apply(p.source, criteria), mode)
}

// Source returns the records in load order. Callers must not modify it.
func (p *Pipeline[T]) Source() []T {
	return p.source
}

// Len reports the size of the source collection.
func (p *Pipeline[T]) Len() int {
	return len(p.source)
}

// Refresh is the one-shot form of Pipeline.Refresh.
func Refresh[T any](source []T, profile Profile[T], criteria Criteria, mode Mode) []T {
	return NewPipeline(source, profile).Refresh(criteria, mode)
}

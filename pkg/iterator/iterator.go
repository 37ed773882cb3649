package iterator

import "iter"

// Collects values until the sequence ends or yields an error. On error the
// values collected so far are dropped.
func CollectErr[T any](it iter.Seq2[T, error]) ([]T, error) {
	p := []T{}
	for value, err := range it {
		if err != nil {
			return nil, err
		}
		p = append(p, value)
	}
	return p, nil
}

package tree

type arena[T any] struct {
	data []T
}

func newArena[T any](capHint uint) *arena[T] {
	return &arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Возвращает индекс нового элемента (1-based, 0 зарезервирован под "нет узла").
func (a *arena[T]) allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data))
}

func (a *arena[T]) get(index uint32) *T {
	if index == 0 || index > uint32(len(a.data)) {
		return nil
	}
	return &a.data[index-1]
}

func (a *arena[T]) len() uint32 {
	return uint32(len(a.data))
}

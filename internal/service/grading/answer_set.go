package grading

import "sort"

// AnswerSet - неупорядоченное множество идентификаторов ответов без повторов
type AnswerSet map[uint]struct{}

// NewAnswerSet строит множество, отбрасывая дубликаты
func NewAnswerSet(ids ...uint) AnswerSet {
	set := make(AnswerSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Len возвращает количество различных элементов
func (s AnswerSet) Len() int {
	return len(s)
}

// Equal сравнивает множества: те же элементы, порядок не важен.
// nil и пустое множество равны.
func (s AnswerSet) Equal(other AnswerSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}

// Sorted возвращает элементы по возрастанию (никогда не nil)
func (s AnswerSet) Sorted() []uint {
	ids := make([]uint, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

package aggregate

import (
	"container/heap"
	"sort"

	"codestat/internal/model"
)

// rankedRecord 附带折叠序号，用于相同行数时保持先到先得。
type rankedRecord struct {
	record model.FileRecord
	seq    int
}

// boundedSet 是容量受限的 TopN 集合。
// 堆顶始终是当前最差的成员，新候选只需与堆顶比较。
type boundedSet struct {
	items    []rankedRecord
	capacity int
	// better 返回 a 是否比 b 更“极端”（更应该留在集合中）。
	better func(a, b rankedRecord) bool
}

func newLargestSet(capacity int) *boundedSet {
	return &boundedSet{
		capacity: capacity,
		better: func(a, b rankedRecord) bool {
			if a.record.Lines.Total != b.record.Lines.Total {
				return a.record.Lines.Total > b.record.Lines.Total
			}
			return a.seq < b.seq
		},
	}
}

func newSmallestSet(capacity int) *boundedSet {
	return &boundedSet{
		capacity: capacity,
		better: func(a, b rankedRecord) bool {
			if a.record.Lines.Total != b.record.Lines.Total {
				return a.record.Lines.Total < b.record.Lines.Total
			}
			return a.seq < b.seq
		},
	}
}

// heap.Interface：Less 把更差的成员排在前面。
func (s *boundedSet) Len() int           { return len(s.items) }
func (s *boundedSet) Less(i, j int) bool { return s.better(s.items[j], s.items[i]) }
func (s *boundedSet) Swap(i, j int)      { s.items[i], s.items[j] = s.items[j], s.items[i] }
func (s *boundedSet) Push(x any)         { s.items = append(s.items, x.(rankedRecord)) }
func (s *boundedSet) Pop() any {
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last
}

// offer 尝试把候选放入集合。
// 集合已满时，只有行数严格更极端的候选才会替换堆顶。
func (s *boundedSet) offer(candidate rankedRecord) {
	if s.capacity <= 0 {
		return
	}
	if len(s.items) < s.capacity {
		heap.Push(s, candidate)
		return
	}

	worst := s.items[0]
	if worst.record.Lines.Total == candidate.record.Lines.Total || !s.better(candidate, worst) {
		return
	}
	s.items[0] = candidate
	heap.Fix(s, 0)
}

// sorted 返回从最极端到最不极端排序的副本。
func (s *boundedSet) sorted() []model.FileRecord {
	ranked := append([]rankedRecord(nil), s.items...)
	sort.Slice(ranked, func(i int, j int) bool {
		return s.better(ranked[i], ranked[j])
	})

	result := make([]model.FileRecord, 0, len(ranked))
	for _, item := range ranked {
		result = append(result, item.record)
	}
	return result
}

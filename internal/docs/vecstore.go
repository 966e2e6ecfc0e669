package docs

import (
	"container/heap"
	"encoding/binary"
	"math"
)

// encodeVector packs a float32 vector into a little-endian BLOB.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// decodeVector unpacks a BLOB back into a float32 vector.
func decodeVector(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec
}

// normalize scales a vector to unit length in place. Cosine similarity
// then reduces to a dot product at query time.
func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}

func dot(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Hit is one retrieved chunk.
type Hit struct {
	DocID   string  `json:"doc_id"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// hitHeap is a min-heap on score, keeping the best K hits seen so far.
type hitHeap []Hit

func (h hitHeap) Len() int            { return len(h) }
func (h hitHeap) Less(i, j int) bool  { return h[i].Score < h[j].Score }
func (h hitHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *hitHeap) Push(x interface{}) { *h = append(*h, x.(Hit)) }
func (h *hitHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// topK maintains the K best hits with a min-heap and returns them in
// descending score order.
type topK struct {
	k    int
	heap hitHeap
}

func newTopK(k int) *topK {
	return &topK{k: k}
}

func (t *topK) add(h Hit) {
	if t.heap.Len() < t.k {
		heap.Push(&t.heap, h)
		return
	}
	if h.Score > t.heap[0].Score {
		t.heap[0] = h
		heap.Fix(&t.heap, 0)
	}
}

func (t *topK) results() []Hit {
	out := make([]Hit, t.heap.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&t.heap).(Hit)
	}
	return out
}

package diag

import (
	"fmt"
	"sync"

	"github.com/apache/arrow/go/arrow"
	"github.com/apache/arrow/go/arrow/array"
	"github.com/apache/arrow/go/arrow/memory"
)

// arrowSchema is the columnar layout ArrowRingBuffer.Snapshot produces,
// one column per Event field.
var arrowSchema = arrow.NewSchema([]arrow.Field{
	{Name: "timestamp_ms", Type: arrow.PrimitiveTypes.Int64},
	{Name: "kind", Type: arrow.BinaryTypes.String},
	{Name: "mode", Type: arrow.BinaryTypes.String},
	{Name: "gamepad_index", Type: arrow.PrimitiveTypes.Int32},
	{Name: "button", Type: arrow.BinaryTypes.String},
	{Name: "timing", Type: arrow.BinaryTypes.String},
	{Name: "content", Type: arrow.BinaryTypes.String},
	{Name: "value", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// ArrowRingBuffer keeps the last capacity diagnostics events in memory and
// materializes them into an Arrow record batch on demand, for a terminal
// dashboard or an in-process inspector rather than durable storage.
type ArrowRingBuffer struct {
	mu       sync.Mutex
	events   []Event
	capacity int
	next     int
	full     bool
	pool     memory.Allocator
}

// NewArrowRingBuffer allocates a ring buffer holding up to capacity events.
func NewArrowRingBuffer(capacity int) *ArrowRingBuffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &ArrowRingBuffer{
		events:   make([]Event, capacity),
		capacity: capacity,
		pool:     memory.NewGoAllocator(),
	}
}

func (b *ArrowRingBuffer) LogEvent(e Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[b.next] = e
	b.next = (b.next + 1) % b.capacity
	if b.next == 0 {
		b.full = true
	}
	return nil
}

func (b *ArrowRingBuffer) Close() error { return nil }

// Snapshot returns the buffered events, oldest first, as a single Arrow
// record batch. Callers must call Release on the returned record.
func (b *ArrowRingBuffer) Snapshot() (array.Record, error) {
	b.mu.Lock()
	ordered := b.orderedLocked()
	b.mu.Unlock()

	tsB := array.NewInt64Builder(b.pool)
	defer tsB.Release()
	kindB := array.NewStringBuilder(b.pool)
	defer kindB.Release()
	modeB := array.NewStringBuilder(b.pool)
	defer modeB.Release()
	idxB := array.NewInt32Builder(b.pool)
	defer idxB.Release()
	buttonB := array.NewStringBuilder(b.pool)
	defer buttonB.Release()
	timingB := array.NewStringBuilder(b.pool)
	defer timingB.Release()
	contentB := array.NewStringBuilder(b.pool)
	defer contentB.Release()
	valueB := array.NewFloat64Builder(b.pool)
	defer valueB.Release()

	for _, e := range ordered {
		tsB.Append(e.TimestampMs)
		kindB.Append(e.Kind)
		modeB.Append(e.Mode)
		idxB.Append(int32(e.GamepadIdx))
		buttonB.Append(e.Button)
		timingB.Append(e.Timing)
		contentB.Append(e.Content)
		valueB.Append(e.Value)
	}

	cols := []array.Interface{
		tsB.NewArray(), kindB.NewArray(), modeB.NewArray(), idxB.NewArray(),
		buttonB.NewArray(), timingB.NewArray(), contentB.NewArray(), valueB.NewArray(),
	}
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()

	if len(ordered) == 0 {
		return array.NewRecord(arrowSchema, cols, 0), nil
	}
	return array.NewRecord(arrowSchema, cols, int64(len(ordered))), nil
}

func (b *ArrowRingBuffer) orderedLocked() []Event {
	if !b.full {
		out := make([]Event, b.next)
		copy(out, b.events[:b.next])
		return out
	}
	out := make([]Event, b.capacity)
	copy(out, b.events[b.next:])
	copy(out[b.capacity-b.next:], b.events[:b.next])
	return out
}

var _ EventLogger = (*ArrowRingBuffer)(nil)

func init() {
	if arrowSchema == nil {
		panic(fmt.Errorf("diag: arrow schema failed to initialize"))
	}
}

package buffer

import (
	"sync"
	"testing"
)

func TestNewRecordingRejectsZeroCapacity(t *testing.T) {
	for _, c := range []int{0, -5} {
		if _, err := NewRecording(c); err == nil {
			t.Fatalf("NewRecording(%d) expected error", c)
		}
	}
}

func TestRecordingAppendTruncatesAtCapacity(t *testing.T) {
	const capacity = 48000 * 16
	r, err := NewRecording(capacity)
	if err != nil {
		t.Fatalf("NewRecording() error = %v", err)
	}

	block := make([]float32, 48)
	for i := range block {
		block[i] = 0.25
	}

	total := 0
	full := false
	for fed := 0; fed < capacity+1000; fed += len(block) {
		var n int
		n, full = r.Append(block)
		total += n
	}

	if !full {
		t.Fatal("expected recording to report full")
	}
	if r.Len() != capacity || total != capacity {
		t.Fatalf("Len() = %d, stored = %d, want %d", r.Len(), total, capacity)
	}
	if r.Remaining() != 0 || !r.Full() {
		t.Fatalf("Remaining() = %d, Full() = %v", r.Remaining(), r.Full())
	}
	if n, _ := r.Append(block); n != 0 {
		t.Fatalf("append after full stored %d samples", n)
	}
}

func TestRecordingPartialAppend(t *testing.T) {
	r, _ := NewRecording(10)
	if n, full := r.Append(make([]float32, 7)); n != 7 || full {
		t.Fatalf("first append n=%d full=%v", n, full)
	}
	n, full := r.Append([]float32{1, 2, 3, 4, 5})
	if n != 3 || !full {
		t.Fatalf("second append n=%d full=%v, want 3/true", n, full)
	}
	got := r.Samples()[7:]
	for i, want := range []float32{1, 2, 3} {
		if got[i] != want {
			t.Fatalf("sample %d = %v, want %v", 7+i, got[i], want)
		}
	}
}

func TestRecordingReset(t *testing.T) {
	r, _ := NewRecording(4)
	r.Append([]float32{1, 2, 3, 4})
	r.Reset()
	if r.Len() != 0 || len(r.Samples()) != 0 {
		t.Fatalf("Len() = %d after Reset", r.Len())
	}
	r.Append([]float32{9})
	if r.Samples()[0] != 9 {
		t.Fatalf("sample 0 = %v, want 9", r.Samples()[0])
	}
}

func TestRecordingPublishesAfterData(t *testing.T) {
	const capacity = 1 << 16
	r, _ := NewRecording(capacity)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		block := make([]float32, 32)
		for base := 0; base < capacity; base += len(block) {
			for i := range block {
				block[i] = float32(base + i)
			}
			r.Append(block)
		}
	}()

	seen := 0
	for seen < capacity {
		n := r.Len()
		view := r.View(n)
		for i := seen; i < n; i++ {
			if view[i] != float32(i) {
				t.Errorf("sample %d = %v before publish", i, view[i])
				wg.Wait()
				return
			}
		}
		seen = n
	}
	wg.Wait()
}

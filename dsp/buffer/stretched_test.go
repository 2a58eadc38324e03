package buffer

import (
	"errors"
	"testing"
)

func TestStretchedAppendBlock(t *testing.T) {
	s, err := NewStretched(128)
	if err != nil {
		t.Fatalf("NewStretched() error = %v", err)
	}

	block := make([]float32, 64)
	block[0] = 1
	if err := s.AppendBlock(block); err != nil {
		t.Fatalf("AppendBlock() error = %v", err)
	}
	if err := s.AppendBlock(block); err != nil {
		t.Fatalf("AppendBlock() error = %v", err)
	}
	if s.Len() != 128 || s.Room() != 0 {
		t.Fatalf("Len=%d Room=%d", s.Len(), s.Room())
	}
	if s.Samples()[64] != 1 {
		t.Fatalf("sample 64 = %v, want 1", s.Samples()[64])
	}

	if err := s.AppendBlock(block); !errors.Is(err, ErrFull) {
		t.Fatalf("AppendBlock() on full error = %v, want ErrFull", err)
	}
	if s.Len() != 128 {
		t.Fatalf("Len changed to %d after refused write", s.Len())
	}
}

func TestStretchedRefusesPartialBlock(t *testing.T) {
	s, _ := NewStretched(96)
	if err := s.AppendSilence(64); err != nil {
		t.Fatalf("AppendSilence() error = %v", err)
	}
	if err := s.AppendBlock(make([]float32, 64)); !errors.Is(err, ErrFull) {
		t.Fatalf("AppendBlock() error = %v, want ErrFull", err)
	}
	if s.Room() != 32 {
		t.Fatalf("Room() = %d, want 32", s.Room())
	}
}

func TestStretchedAppendSilenceClearsStaleData(t *testing.T) {
	s, _ := NewStretched(4)
	_ = s.AppendBlock([]float32{1, 2, 3, 4})
	s.Reset()
	if err := s.AppendSilence(4); err != nil {
		t.Fatalf("AppendSilence() error = %v", err)
	}
	for i, v := range s.Samples() {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
	if err := s.AppendSilence(1); !errors.Is(err, ErrFull) {
		t.Fatalf("AppendSilence() error = %v, want ErrFull", err)
	}
	if err := s.AppendSilence(-1); err == nil {
		t.Fatal("expected error for negative length")
	}
}

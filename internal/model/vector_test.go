package model

import (
	"math"
	"testing"
)

func TestCosineDistance(t *testing.T) {
	t.Parallel()

	q := Vector{0.1, 0.2, 0.3, 0.4}

	// 同向向量的距离为 0
	d, err := q.CosineDistance(Vector{0.2, 0.4, 0.6, 0.8})
	if err != nil {
		t.Fatalf("CosineDistance error: %v", err)
	}
	if math.Abs(d) > 1e-9 {
		t.Fatalf("expected distance ~0 for parallel vectors, got %f", d)
	}

	// 反向向量的距离为 2
	d, err = q.CosineDistance(Vector{-0.1, -0.2, -0.3, -0.4})
	if err != nil {
		t.Fatalf("CosineDistance error: %v", err)
	}
	if math.Abs(d-2) > 1e-9 {
		t.Fatalf("expected distance ~2 for opposite vectors, got %f", d)
	}
}

func TestCosineDistance_Errors(t *testing.T) {
	t.Parallel()

	q := Vector{0.1, 0.2, 0.3, 0.4}
	if _, err := q.CosineDistance(Vector{0.1, 0.2}); err == nil {
		t.Fatalf("expected error for dimension mismatch")
	}
	if _, err := q.CosineDistance(Vector{0, 0, 0, 0}); err == nil {
		t.Fatalf("expected error for zero vector")
	}
}

func TestVectorValueScanRoundTrip(t *testing.T) {
	t.Parallel()

	v := Vector{0.12, -0.45, 0.91, 0.33}
	raw, err := v.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}

	var got Vector
	if err := got.Scan(raw); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(got) != len(v) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(v))
	}
	for i := range v {
		if got[i] != v[i] {
			t.Fatalf("element %d mismatch: got %f want %f", i, got[i], v[i])
		}
	}
}

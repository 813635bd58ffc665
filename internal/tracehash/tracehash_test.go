package tracehash

import (
	"fmt"
	"testing"
)

func TestNormalizeDeterministic(t *testing.T) {
	keys := []string{"", "trace-1", "abc", "4bf92f3577b34da6a3ce929d0e0e4736"}
	for _, key := range keys {
		first := Normalize(key)
		for i := 0; i < 10; i++ {
			if got := Normalize(key); got != first {
				t.Errorf("Normalize(%q) not deterministic: %v != %v", key, got, first)
			}
		}
	}
}

func TestNormalizeRange(t *testing.T) {
	for i := 0; i < 10000; i++ {
		v := Normalize(fmt.Sprintf("trace-%d", i))
		if v < 0 || v > 1 {
			t.Fatalf("Normalize out of range: %v", v)
		}
	}
}

func TestNormalizeDistribution(t *testing.T) {
	// 粗粒度均匀性检查：一半的 key 应落在 [0, 0.5)
	const total = 100000
	below := 0
	for i := 0; i < total; i++ {
		if Normalize(fmt.Sprintf("key-%d", i)) < 0.5 {
			below++
		}
	}
	ratio := float64(below) / float64(total)
	if ratio < 0.48 || ratio > 0.52 {
		t.Errorf("distribution skewed: %.4f of keys below 0.5", ratio)
	}
}

var benchResult float64

func BenchmarkNormalize(b *testing.B) {
	var result float64

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		result = Normalize("4bf92f3577b34da6a3ce929d0e0e4736")
	}

	benchResult = result
}

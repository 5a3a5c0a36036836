package audio

import (
	"bytes"
	"math"
	"testing"
)

func TestFloat32ToPCM16LE(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
		want []byte
	}{
		{"silence", []float32{0}, []byte{0x00, 0x00}},
		{"positive rail", []float32{1}, []byte{0xFF, 0x7F}},
		{"negative rail", []float32{-1}, []byte{0x00, 0x80}},
		{"clamps above", []float32{2.5}, []byte{0xFF, 0x7F}},
		{"clamps below", []float32{-2.5}, []byte{0x00, 0x80}},
		{"half scale", []float32{0.5}, []byte{0xFF, 0x3F}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Float32ToPCM16LE(tt.in); !bytes.Equal(got, tt.want) {
				t.Fatalf("Float32ToPCM16LE(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPCM16LEToFloat32(t *testing.T) {
	got := PCM16LEToFloat32([]byte{0xFF, 0x7F, 0x00, 0x80, 0x00, 0x00})
	want := []float32{1, -1, 0}
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPCM16LEToFloat32IgnoresOddTrailingByte(t *testing.T) {
	got := PCM16LEToFloat32([]byte{0x00, 0x00, 0x7F})
	if len(got) != 1 {
		t.Fatalf("length = %d, want 1", len(got))
	}
}

func TestRoundTripStaysClose(t *testing.T) {
	in := []float32{0, 0.25, -0.25, 0.9, -0.9, 1, -1}
	out := PCM16LEToFloat32(Float32ToPCM16LE(in))
	for i := range in {
		if diff := math.Abs(float64(in[i] - out[i])); diff > 1.0/0x7FFF {
			t.Fatalf("sample %d drifted by %v", i, diff)
		}
	}
}

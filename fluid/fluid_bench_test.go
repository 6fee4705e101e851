package fluid

import "testing"

func benchmarkStep(b *testing.B, w, h int) {
	s, err := New(w, h, DefaultParams(), 42)
	if err != nil {
		b.Fatal(err)
	}
	defer s.Close()

	s.AddForce(Splat{X: 0.5, Y: 0.5, DX: 3, DY: -2, Radius: 8, R: 1, G: 0.5, B: 0.1})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%30 == 0 {
			s.AddForce(Splat{X: 0.3, Y: 0.6, DX: -2, DY: 1, Radius: 6, G: 1})
		}
		s.Step(0)
	}
}

func BenchmarkStep100x200(b *testing.B) { benchmarkStep(b, 100, 200) }
func BenchmarkStep128x128(b *testing.B) { benchmarkStep(b, 128, 128) }
func BenchmarkStep256x256(b *testing.B) { benchmarkStep(b, 256, 256) }

func BenchmarkSplat(b *testing.B) {
	s, err := New(128, 128, DefaultParams(), 42)
	if err != nil {
		b.Fatal(err)
	}
	defer s.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.AddForce(Splat{X: 0.5, Y: 0.5, Radius: 10, R: 1})
	}
}

package langdetect

import (
	"testing"
)

func BenchmarkFlavorByExtension(b *testing.B) {
	code := []byte("let decimal: number = 6;\n")
	b.ResetTimer()
	for range b.N {
		Flavor("decimal.ts", code)
	}
}

func BenchmarkFlavorByPattern(b *testing.B) {
	code := []byte(`function pluck<T, K extends keyof T>(o: T, names: K[]): T[K][] {
  console.log(o);
}`)
	b.ResetTimer()
	for range b.N {
		Flavor("", code)
	}
}

func BenchmarkFlavorEmpty(b *testing.B) {
	code := []byte("")
	b.ResetTimer()
	for range b.N {
		Flavor("", code)
	}
}

func BenchmarkFenceFlavor(b *testing.B) {
	b.ResetTimer()
	for range b.N {
		FenceFlavor("typescript title=\"x.ts\"")
	}
}

package sysuuid

import (
	"testing"
)

func BenchmarkGenerate(b *testing.B) {
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = Generate()
		}
	})
}

func BenchmarkGenerateRandom(b *testing.B) {
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = GenerateRandom()
		}
	})
}

func BenchmarkGenerateTime(b *testing.B) {
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = GenerateTime()
		}
	})
}

func BenchmarkGenerateTimeSafe(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = GenerateTimeSafe()
	}
}

func BenchmarkUUID_String(b *testing.B) {
	uuid := GenerateRandom()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = uuid.String()
	}
}

func BenchmarkUnparse(b *testing.B) {
	uuid := GenerateRandom()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Unparse(uuid)
	}
}

func BenchmarkUnparseUpper(b *testing.B) {
	uuid := GenerateRandom()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = UnparseUpper(uuid)
	}
}

func BenchmarkParse(b *testing.B) {
	s := "f47ac10b-58cc-4372-a567-0e02b2c3d479"
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := Parse(s)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_NoHyphens(b *testing.B) {
	s := "f47ac10b58cc4372a5670e02b2c3d479"
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := Parse(s)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUUID_MarshalText(b *testing.B) {
	uuid := GenerateRandom()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := uuid.MarshalText()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUUID_Equal(b *testing.B) {
	u1 := GenerateRandom()
	u2 := u1.Clone()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = u1.Equal(u2)
	}
}

package mregexp

import (
	"strings"
	"testing"
)

func BenchmarkLiteral(b *testing.B) {
	re := MustCompile("abc")
	input := "xabcy"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(input)
	}
}

// BenchmarkLiteralLongPrefix measures the single-literal prefilter skipping
// a long prefix.
func BenchmarkLiteralLongPrefix(b *testing.B) {
	re := MustCompile("needle")
	input := strings.Repeat("x", 10000) + "needle"
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(input)
	}
}

// BenchmarkAlternationPrefilter measures the multi-literal prefilter.
func BenchmarkAlternationPrefilter(b *testing.B) {
	re := MustCompile("foo|bar|baz|qux")
	input := strings.Repeat("x", 10000) + "qux"
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(input)
	}
}

func BenchmarkNoPrefilter(b *testing.B) {
	config := DefaultConfig()
	config.Prefilter = false
	re, err := CompileWithConfig("foo|bar|baz|qux", config)
	if err != nil {
		b.Fatal(err)
	}
	input := strings.Repeat("x", 10000) + "qux"
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(input)
	}
}

func BenchmarkClass(b *testing.B) {
	re := MustCompile(`[a-zä]+\d`)
	input := strings.Repeat("abcä ", 200) + "abc1"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(input)
	}
}

// BenchmarkPathological is linear here: repetition never gives input back,
// so (a+)+b does not explode on a run of a's.
func BenchmarkPathological(b *testing.B) {
	re := MustCompile(`(a+)+b`)
	input := strings.Repeat("a", 30)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(input)
	}
}

func BenchmarkCaptures(b *testing.B) {
	re := MustCompile(`(\w+)@(\w+)\.(\w+)`)
	input := "contact: someone@example.com"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.FindStringSubmatch(input)
	}
}

func BenchmarkFindAll(b *testing.B) {
	re := MustCompile(`\w+`)
	input := strings.Repeat("word ", 1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.FindAllStringIndex(input, -1)
	}
}

func BenchmarkCompile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		MustCompile(`^(\d{3})-(\d{3,4})|[a-zA-Z_]\w*$`)
	}
}

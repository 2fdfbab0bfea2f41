package benchmark_test

import (
	"testing"

	"github.com/dzonerzy/go-argspec/argspec"
)

// Parser benchmarks over the engine itself. Parsers are built once outside
// the loop; Parse is the hot path and is safe for reuse.

func benchSpec(b *testing.B) *argspec.Command {
	b.Helper()
	return argspec.New("bench").
		Flag("verbose", "v").Mode(argspec.ModeCount).Back().
		Scalar("output", "o").Back().
		List("files", "f").Back().
		Dict("define", "D").Back().
		Command("run").
		Scalar("port", "p").Back().
		Flag("debug").Back().
		Positional("target", argspec.Exactly(1)).
		Parent().
		MustBuild()
}

func BenchmarkParseSimpleFlags(b *testing.B) {
	parser, err := argspec.NewParser(benchSpec(b), nil)
	if err != nil {
		b.Fatal(err)
	}
	args := []string{"-vv", "--output", "result.txt"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Parse(args); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseSubcommand(b *testing.B) {
	parser, err := argspec.NewParser(benchSpec(b), nil)
	if err != nil {
		b.Fatal(err)
	}
	args := []string{"--verbose", "run", "--port", "9000", "--debug", "all"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Parse(args); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseVariadicList(b *testing.B) {
	parser, err := argspec.NewParser(benchSpec(b), nil)
	if err != nil {
		b.Fatal(err)
	}
	args := []string{"--files", "a.go", "b.go", "c.go", "d.go", "e.go", "--verbose"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Parse(args); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseDictMerge(b *testing.B) {
	parser, err := argspec.NewParser(benchSpec(b), nil)
	if err != nil {
		b.Fatal(err)
	}
	args := []string{"-D", "a=1", "-D", "b=2", "-D", "a=3", "-D", "c=4"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Parse(args); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseShortCluster(b *testing.B) {
	parser, err := argspec.NewParser(benchSpec(b), nil)
	if err != nil {
		b.Fatal(err)
	}
	args := []string{"-vvo", "out.txt"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Parse(args); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNewParser(b *testing.B) {
	spec := benchSpec(b)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := argspec.NewParser(spec, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseUnknownOptionError(b *testing.B) {
	parser, err := argspec.NewParser(benchSpec(b), nil)
	if err != nil {
		b.Fatal(err)
	}
	args := []string{"--outpud", "x"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Parse(args); err == nil {
			b.Fatal("expected error")
		}
	}
}

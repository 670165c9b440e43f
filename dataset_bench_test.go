package rplot

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func benchmarkRange(b *testing.B, count int, tags string, parallel bool) {
	tempPath, err := ioutil.TempDir(``, `rplot_test_`)
	if err != nil {
		panic(err.Error())
	}

	defer os.RemoveAll(tempPath)

	dataset, err := OpenDataset(filepath.Join(tempPath, `bench.db`))
	if err != nil {
		panic(err.Error())
	}

	defer dataset.Close()

	metric := NewMetric(`rplot.test.bench1` + tags)

	for i := 0; i < count; i++ {
		metric.Push(time.Date(2006, 1, 2, 15, 4, 5+i, 0, mst), float64(1.2*float64(i+1)))
	}

	if err := dataset.WriteMetric(metric); err != nil {
		panic(fmt.Sprintf("Error writing %s: %v", metric.GetName(), err))
	}

	fn := func() {
		if _, err := dataset.Range(time.Time{}, time.Now(), `rplot.test.bench1*`); err != nil {
			panic(err.Error())
		}
	}

	b.ResetTimer()

	if parallel {
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				fn()
			}
		})
	} else {
		for n := 0; n < b.N; n++ {
			fn()
		}
	}
}

func BenchmarkRange_10(b *testing.B) {
	benchmarkRange(b, 10, ``, false)
}

func BenchmarkRange_1000(b *testing.B) {
	benchmarkRange(b, 1000, ``, false)
}

func BenchmarkRange_1000_Tagged(b *testing.B) {
	benchmarkRange(b, 1000, `,host=alpha,region=west`, false)
}

func BenchmarkRange_1000_Parallel(b *testing.B) {
	benchmarkRange(b, 1000, ``, true)
}

package rplot

import (
	"math/rand"
	"testing"
	"time"
)

func benchmarkBucketing(b *testing.B, count int, duration time.Duration) {
	metric := NewMetric(`rplot.bench.pointbucket`)

	for i := 0; i < count; i++ {
		metric.Push(time.Date(2006, 1, 2, 15, 4, i, 0, mst), 0.1+float64(rand.Float64()*float64(i)))
	}

	input := metric.Points()

	for n := 0; n < b.N; n++ {
		MakeTimeBuckets(input, duration)
	}
}

func BenchmarkBucket_1_30s(b *testing.B) {
	benchmarkBucketing(b, 1, 30*time.Second)
}

func BenchmarkBucket_10_30s(b *testing.B) {
	benchmarkBucketing(b, 10, 30*time.Second)
}

func BenchmarkBucket_100_30s(b *testing.B) {
	benchmarkBucketing(b, 100, 30*time.Second)
}

func BenchmarkBucket_1000_30s(b *testing.B) {
	benchmarkBucketing(b, 1000, 30*time.Second)
}

func BenchmarkBucket_10000_30s(b *testing.B) {
	benchmarkBucketing(b, 10000, 30*time.Second)
}

func benchmarkRender(b *testing.B, count int) {
	points := make(PointSet, count)

	for i := range points {
		points[i] = Point{X: float64(i) * MINUTE, Y: rand.Float64()}
	}

	graph := NewGraph(800, 400, `bench`, points)

	for n := 0; n < b.N; n++ {
		if err := graph.Render(NewRecordingCanvas(800, 400)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRender_100(b *testing.B) {
	benchmarkRender(b, 100)
}

func BenchmarkRender_10000(b *testing.B) {
	benchmarkRender(b, 10000)
}

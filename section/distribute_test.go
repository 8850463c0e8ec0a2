package section

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func TestDistribute(t *testing.T) {
	for _, tt := range []struct {
		total   int
		weights []float64
		want    []int
	}{
		{100, []float64{0.2, 0.3, 0}, []int{20, 30, 50}},
		{10, []float64{0, 0, 0}, []int{3, 3, 4}},
		{10, []float64{0.5, 0.5}, []int{5, 5}},
		{10, []float64{0.33, 0.33, 0.33}, []int{3, 3, 4}},
		{10, []float64{0.8, 0.8, 0}, []int{8, 2, 0}},
		{7, []float64{0.5, 0, 0}, []int{4, 1, 2}},
		{0, []float64{0.5, 0}, []int{0, 0}},
		{5, nil, []int{}},
		{100, []float64{math.Inf(1), 0}, []int{100, 0}},
		{100, []float64{math.Inf(-1), 0.25}, []int{75, 25}},
		{10, []float64{3, 0.5}, []int{10, 0}},
		{10, []float64{math.NaN(), 0.5}, []int{5, 5}},
	} {
		got := distribute(tt.total, tt.weights)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("distribute(%d, %v) = %v, want %v", tt.total, tt.weights, got, tt.want)
		}
	}
}

func TestDistributeConservesTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		n := rng.Intn(8) + 1
		total := rng.Intn(300) + 1
		weights := make([]float64, n)
		for j := range weights {
			switch rng.Intn(8) {
			case 0:
				// flex
			case 1:
				weights[j] = math.Inf(1)
			case 2:
				weights[j] = math.Inf(-1)
			case 3:
				weights[j] = math.NaN()
			case 4:
				weights[j] = rng.Float64() * 3
			default:
				weights[j] = rng.Float64() * 0.6
			}
		}
		sizes := distribute(total, weights)
		sum := 0
		for _, s := range sizes {
			if s < 0 {
				t.Fatalf("distribute(%d, %v) = %v: negative size", total, weights, sizes)
			}
			sum += s
		}
		if sum != total {
			t.Fatalf("distribute(%d, %v) = %v: sum %d", total, weights, sizes, sum)
		}
	}
}

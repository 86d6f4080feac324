package numeric_test

import (
	"fmt"
	"log"

	"github.com/matzehuels/figforge/pkg/numeric"
)

func ExampleSoftmax() {
	for _, temp := range []float64{1, 100} {
		p, err := numeric.Softmax([]float64{1, 2, 3}, temp)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("T=%g: %.4f %.4f %.4f\n", temp, p[0], p[1], p[2])
	}
	// Output:
	// T=1: 0.0900 0.2447 0.6652
	// T=100: 0.3300 0.3333 0.3367
}

func ExampleLinearFit() {
	fit, err := numeric.LinearFit([]float64{1, 2, 3, 4}, []float64{3, 5, 7, 9})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(fit)
	fmt.Printf("%.1f\n", fit.At(10))
	// Output:
	// y = 2.000x + 1.000  (R² = 1.000)
	// 21.0
}

func ExampleOverlap() {
	fmt.Printf("%.3f\n", numeric.Overlap(0, 1, 0, 1, 2001))
	fmt.Printf("%.3f\n", numeric.Overlap(0, 1, 1, 1, 2001))
	fmt.Printf("%.3f\n", numeric.EqualVarianceOverlap(0, 1, 1))
	// Output:
	// 1.000
	// 0.617
	// 0.617
}

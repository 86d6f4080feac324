package chart_test

import (
	"fmt"

	"github.com/matzehuels/figforge/pkg/chart"
)

func ExampleNiceTicks() {
	fmt.Println(chart.NiceTicks(0, 100, 6))
	fmt.Println(chart.NiceTicks(3, 97, 5))
	// Output:
	// [0 20 40 60 80 100]
	// [20 40 60 80]
}

func ExampleLogTicks() {
	fmt.Println(chart.LogTicks(0.5, 2000))
	// Output: [1 10 100 1000]
}

func ExampleFormatSI() {
	fmt.Println(chart.FormatSI(1.5e9), chart.FormatSI(2500), chart.FormatSI(42))
	// Output: 1.5B 2.5K 42
}

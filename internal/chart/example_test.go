package chart_test

import (
	"fmt"

	"github.com/dshills/tschart/internal/chart"
	"github.com/dshills/tschart/internal/data"
)

func ExampleNew() {
	c, err := chart.New("sales", chart.Options{
		Canvas: map[string]any{"width": 640, "height": 320},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer c.Close()

	_ = c.SetData([]data.Series{
		{Name: "east", Points: []data.Point{{X: 1, Y: 3}, {X: 2, Y: 9}}},
	})
	c.SetYDomain(0, "max")

	fmt.Println(c.Graph().Width, c.Graph().Height)
	fmt.Println(c.ResolvedYDomain())
	// Output:
	// 480 250
	// [0 9]
}

func ExampleChart_SetXOrient() {
	c, _ := chart.New("sales", chart.Options{})
	defer c.Close()

	res := c.SetXOrient("left")
	fmt.Println(res.OK(), c.XOrient())
	// Output: false bottom
}

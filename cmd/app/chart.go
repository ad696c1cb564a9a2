package main

import (
	"fmt"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
	"github.com/0x0FACED/go-clarkwright/pkg/savings"
	"github.com/0x0FACED/go-clarkwright/pkg/voronoi"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var routeColors = []string{"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231", "#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe"}

func prepareScatter(scatter *charts.Scatter) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "900px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                "Voronoi neighbours and savings routes",
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "X",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Y",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// diagramToEcharts draws the clients, the clipped Voronoi edges and one polyline per route.
func diagramToEcharts(reg *client.Registry, diagram *voronoi.Diagram, sol *savings.Solution, bbox voronoi.BoundingBox) *charts.Scatter {
	scatter := charts.NewScatter()
	prepareScatter(scatter)

	customers := make([]opts.ScatterData, 0, reg.Len())
	var depot []opts.ScatterData
	for _, c := range reg.All() {
		point := opts.ScatterData{
			Name:  fmt.Sprintf("#%d demand %d", c.ID(), c.Demand()),
			Value: []float64{c.X(), c.Y()},
		}
		if c.IsDepot() {
			point.SymbolSize = 16
			depot = append(depot, point)
			continue
		}
		customers = append(customers, point)
	}

	scatter.AddSeries("Clients", customers).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)
	scatter.AddSeries("Depot", depot).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "orange",
			}),
		)

	for _, seg := range diagram.Segments(bbox) {
		line := charts.NewLine()
		line.AddSeries("Edges", []opts.LineData{
			{Value: []float64{seg.A.X, seg.A.Y}},
			{Value: []float64{seg.B.X, seg.B.Y}},
		}).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 1,
				Color: "#757575",
			}),
		)
		scatter.Overlap(line)
	}

	if sol == nil {
		return scatter
	}
	depotClient, _ := reg.Depot()
	for _, r := range sol.Routes {
		data := []opts.LineData{{Value: []float64{depotClient.X(), depotClient.Y()}}}
		for _, id := range r.Clients {
			c, _ := reg.Get(id)
			data = append(data, opts.LineData{Value: []float64{c.X(), c.Y()}})
		}
		data = append(data, opts.LineData{Value: []float64{depotClient.X(), depotClient.Y()}})

		line := charts.NewLine()
		line.AddSeries(fmt.Sprintf("Route %d", r.ID), data).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 2,
				Color: routeColors[r.ID%len(routeColors)],
			}),
		)
		scatter.Overlap(line)
	}

	return scatter
}

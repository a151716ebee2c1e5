package io

import (
	"fmt"
	"io"
	"strings"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/xtal/diffract"
)

var colors = []string{
	"k", "r", "b", "g", "m", "c", "y",
}

// PlotThetaCut adds a figure showing every trace in plot to the pyplot
// script and saves it to fname. The figure is only drawn once
// plt.Execute() is called.
func PlotThetaCut(plot *diffract.ThetaCutPlot, fname string) {
	plt.Figure()

	for i, tr := range plot.Traces {
		if len(tr.X) == 0 {
			continue
		}
		plt.Plot(tr.X, tr.Y, plt.LW(2), plt.C(colors[i%len(colors)]))
	}

	plt.Title(plot.Title)
	plt.XLabel(plot.XLabel, plt.FontSize(16))
	plt.YLabel(plot.YLabel, plt.FontSize(16))
	plt.XLim(plot.XRange[0], plot.XRange[1])
	plt.YLim(plot.YRange[0], plot.YRange[1])
	plt.Grid(plt.Axis("both"))
	plt.SaveFig(fname)
}

// WriteThetaCutScript writes a standalone matplotlib script that draws plot
// with a legend naming each trace.
func WriteThetaCutScript(w io.Writer, plot *diffract.ThetaCutPlot) error {
	b := &strings.Builder{}
	b.WriteString("import matplotlib.pyplot as plt\n\nplt.figure()\n")

	for i, tr := range plot.Traces {
		fmt.Fprintf(b, "plt.plot(%s, %s, '%s', lw=2, label=r'%s')\n",
			strSlice(tr.X), strSlice(tr.Y), colors[i%len(colors)],
			strings.Replace(tr.Name, "θ", `$\theta$`, -1))
	}

	fmt.Fprintf(b, `plt.title(r'%s')
plt.xlabel(r'%s', fontsize=16)
plt.ylabel(r'%s', fontsize=16)
plt.xlim(%g, %g)
plt.ylim(%g, %g)
plt.grid(True)
plt.legend(fontsize=12, loc='upper left')
plt.show()
`, plot.Title, plot.XLabel, plot.YLabel,
		plot.XRange[0], plot.XRange[1], plot.YRange[0], plot.YRange[1])

	_, err := io.WriteString(w, b.String())
	return err
}

func strSlice(xs []float64) string {
	strs := make([]string, len(xs))
	for i := range xs {
		strs[i] = fmt.Sprintf("%.6g", xs[i])
	}
	return fmt.Sprintf("[%s]", strings.Join(strs, ", "))
}

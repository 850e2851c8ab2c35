package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/rkaran/silverdash/internal/format"
	"github.com/rkaran/silverdash/internal/geo"
)

// ErrNoGeometry is returned when no feature has a drawable geometry.
var ErrNoGeometry = errors.New("no drawable geometry")

// Map titles.
const (
	MapTitle    = "India State-wise Silver Purchases"
	MapSubtitle = "(Darker Red = Higher Purchases)"
	LegendTitle = "Silver Purchased (kg)"
	NoDataLabel = "No data"
)

const (
	missingFill = "#d3d3d3"
	edgeColor   = "#000000"

	titleHeight = 64
	legendWidth = 150
	margin      = 20

	minPlotSize = 100
)

// Smallest canvas that leaves a minPlotSize square for the map itself.
const (
	MinMapWidth  = legendWidth + 2*margin + minPlotSize
	MinMapHeight = titleHeight + 2*margin + minPlotSize
)

// MapOptions control the choropleth canvas.
type MapOptions struct {
	Width   int
	Height  int
	Palette Palette
}

// DefaultMapOptions returns a 1200x900 canvas with the YlOrRd ramp.
func DefaultMapOptions() MapOptions {
	return MapOptions{Width: 1200, Height: 900, Palette: YlOrRd()}
}

// projection maps lon/lat into canvas pixels, keeping the aspect ratio.
type projection struct {
	bound      orb.Bound
	scale      float64
	offX, offY float64
	left, top  float64
}

func newProjection(b orb.Bound, left, top, width, height float64) projection {
	dx, dy := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]
	scale := 1.0
	switch {
	case dx > 0 && dy > 0:
		scale = min(width/dx, height/dy)
	case dx > 0:
		scale = width / dx
	case dy > 0:
		scale = height / dy
	}
	return projection{
		bound: b,
		scale: scale,
		offX:  (width - dx*scale) / 2,
		offY:  (height - dy*scale) / 2,
		left:  left,
		top:   top,
	}
}

func (p projection) point(pt orb.Point) (float64, float64) {
	x := p.left + p.offX + (pt[0]-p.bound.Min[0])*p.scale
	y := p.top + p.offY + (p.bound.Max[1]-pt[1])*p.scale
	return x, y
}

// Choropleth draws the joined features as an SVG map. Matched features are
// shaded by quantity and labelled at their centroid; unmatched features are
// grey with a hatch.
func Choropleth(w io.Writer, res geo.JoinResult, opt MapOptions) error {
	if opt.Width <= 0 || opt.Height <= 0 {
		def := DefaultMapOptions()
		opt.Width, opt.Height = def.Width, def.Height
	}
	if opt.Palette.stops == nil {
		opt.Palette = YlOrRd()
	}

	var bound orb.Bound
	drawable := 0
	for _, rec := range res.Records {
		if rec.Feature == nil || rec.Feature.Geometry == nil {
			continue
		}
		b := rec.Feature.Geometry.Bound()
		if drawable == 0 {
			bound = b
		} else {
			bound = bound.Union(b)
		}
		drawable++
	}
	if drawable == 0 {
		return ErrNoGeometry
	}
	if opt.Width < MinMapWidth || opt.Height < MinMapHeight {
		return fmt.Errorf("map canvas %dx%d is smaller than %dx%d", opt.Width, opt.Height, MinMapWidth, MinMapHeight)
	}

	mapW := float64(opt.Width - legendWidth - 2*margin)
	mapH := float64(opt.Height - titleHeight - 2*margin)
	proj := newProjection(bound, margin, titleHeight+margin, mapW, mapH)
	lo, hi, anyMatched := res.Range()

	canvas := svg.New(w)
	canvas.Start(opt.Width, opt.Height)
	canvas.Title(MapTitle)
	canvas.Desc(fmt.Sprintf("Matched states: %d out of %d", res.Matched, res.Total))

	canvas.Def()
	canvas.Pattern("nodata", 0, 0, 8, 8, "user")
	canvas.Rect(0, 0, 8, 8, "fill:"+missingFill)
	canvas.Path("M-2,2 l4,-4 M0,8 l8,-8 M6,10 l4,-4", "stroke:#555555;stroke-width:1")
	canvas.PatternEnd()
	stops := opt.Palette.Stops()
	offsets := make([]svg.Offcolor, len(stops))
	for i, c := range stops {
		offsets[i] = svg.Offcolor{Offset: uint8(i * 100 / (len(stops) - 1)), Color: c, Opacity: 1}
	}
	canvas.LinearGradient("ramp", 0, 100, 0, 0, offsets)
	canvas.DefEnd()

	canvas.Rect(0, 0, opt.Width, opt.Height, "fill:white")
	canvas.Text(opt.Width/2, 28, MapTitle, "font-size:22px;font-weight:bold;text-anchor:middle")
	canvas.Text(opt.Width/2, 50, MapSubtitle, "font-size:14px;text-anchor:middle")

	canvas.Gid("states")
	for _, rec := range res.Records {
		if rec.Feature == nil || rec.Feature.Geometry == nil {
			continue
		}
		d := pathData(rec.Feature.Geometry, proj)
		if d == "" {
			continue
		}
		fill := "url(#nodata)"
		if rec.QuantityKg != nil {
			fill = opt.Palette.Scale(*rec.QuantityKg, lo, hi).Hex()
		}
		canvas.Path(d,
			"fill:"+fill+";stroke:"+edgeColor+";stroke-width:0.8",
			`fill-rule="evenodd"`,
			`data-state="`+escapeAttr(rec.Normalized)+`"`)
	}
	canvas.Gend()

	canvas.Gid("labels")
	for _, rec := range res.Records {
		if rec.QuantityKg == nil || rec.Feature == nil || rec.Feature.Geometry == nil {
			continue
		}
		c, _ := planar.CentroidArea(rec.Feature.Geometry)
		x, y := proj.point(c)
		style := "font-size:9px;text-anchor:middle;paint-order:stroke;stroke:white;stroke-width:2px"
		canvas.Text(int(x), int(y)-2, rec.Normalized, style)
		canvas.Text(int(x), int(y)+9, format.Kilograms(*rec.QuantityKg), style)
	}
	canvas.Gend()

	drawLegend(canvas, opt, lo, hi, anyMatched, res.Unmatched > 0)

	canvas.End()
	return nil
}

func drawLegend(canvas *svg.SVG, opt MapOptions, lo, hi float64, anyMatched, anyMissing bool) {
	x := opt.Width - legendWidth + 10
	top := titleHeight + margin + 20
	barH := (opt.Height - titleHeight - 2*margin) * 8 / 10 / 2

	canvas.Gid("legend")
	canvas.Text(x, top-10, LegendTitle, "font-size:12px;font-weight:bold")
	if anyMatched {
		canvas.Rect(x, top, 20, barH, "fill:url(#ramp);stroke:"+edgeColor+";stroke-width:0.5")
		canvas.Text(x+26, top+10, format.Kilograms(hi), "font-size:11px")
		canvas.Text(x+26, top+barH, format.Kilograms(lo), "font-size:11px")
		top += barH + 20
	}
	if anyMissing || !anyMatched {
		canvas.Rect(x, top, 20, 14, "fill:url(#nodata);stroke:"+edgeColor+";stroke-width:0.5")
		canvas.Text(x+26, top+11, NoDataLabel, "font-size:11px")
	}
	canvas.Gend()
}

// pathData renders polygonal geometry as SVG path commands. Other geometry
// types draw nothing.
func pathData(g orb.Geometry, proj projection) string {
	var b strings.Builder
	appendGeometry(&b, g, proj)
	return b.String()
}

func appendGeometry(b *strings.Builder, g orb.Geometry, proj projection) {
	switch g := g.(type) {
	case orb.Polygon:
		for _, r := range g {
			appendRing(b, r, proj)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			for _, r := range p {
				appendRing(b, r, proj)
			}
		}
	case orb.Ring:
		appendRing(b, g, proj)
	case orb.Collection:
		for _, sub := range g {
			appendGeometry(b, sub, proj)
		}
	}
}

func appendRing(b *strings.Builder, r orb.Ring, proj projection) {
	if len(r) < 3 {
		return
	}
	for i, pt := range r {
		x, y := proj.point(pt)
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(strconv.FormatFloat(x, 'f', 1, 64))
		b.WriteString(",")
		b.WriteString(strconv.FormatFloat(y, 'f', 1, 64))
	}
	b.WriteString(" Z")
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;")

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// Package chart builds declarative Plotly figures for the dashboard.
//
// A Figure is plain data shaped like a Plotly.js figure (data, layout,
// frames). The browser renders it; nothing in this package draws anything.
package chart

// Figure is a complete chart definition in Plotly JSON form.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Frames []Frame `json:"frames,omitempty"`
}

// Trace is one data series. Bar traces use X/Y, choropleth traces use
// Locations/Z. Nil entries in Y or Z serialize as null (missing mean).
type Trace struct {
	Type         string     `json:"type"`
	Name         string     `json:"name,omitempty"`
	LegendGroup  string     `json:"legendgroup,omitempty"`
	ShowLegend   *bool      `json:"showlegend,omitempty"`
	X            []string   `json:"x,omitempty"`
	Y            []*float64 `json:"y,omitempty"`
	Locations    []string   `json:"locations,omitempty"`
	LocationMode string     `json:"locationmode,omitempty"`
	Z            []*float64 `json:"z,omitempty"`
	ZMin         *float64   `json:"zmin,omitempty"`
	ZMax         *float64   `json:"zmax,omitempty"`
	ColorScale   any        `json:"colorscale,omitempty"`
	ShowScale    *bool      `json:"showscale,omitempty"`
	ColorBar     *ColorBar  `json:"colorbar,omitempty"`
	Marker       *Marker    `json:"marker,omitempty"`
	Hover        string     `json:"hovertemplate,omitempty"`
}

// Marker styles bar fills. Color is either a single color string or one
// numeric value per bar mapped through ColorScale.
type Marker struct {
	Color      any       `json:"color,omitempty"`
	ColorScale any       `json:"colorscale,omitempty"`
	ShowScale  *bool     `json:"showscale,omitempty"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
}

type ColorBar struct {
	Title *Title `json:"title,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

type Font struct {
	Color string `json:"color,omitempty"`
}

type Axis struct {
	Title *Title `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
}

type Projection struct {
	Type string `json:"type"`
}

type Geo struct {
	Scope      string      `json:"scope,omitempty"`
	Projection *Projection `json:"projection,omitempty"`
	BgColor    string      `json:"bgcolor,omitempty"`
	ShowFrame  *bool       `json:"showframe,omitempty"`
}

type Legend struct {
	Title *Title `json:"title,omitempty"`
}

// Layout holds axis bindings, sizing, theme colors and animation controls.
type Layout struct {
	Title        *Title       `json:"title,omitempty"`
	Height       int          `json:"height,omitempty"`
	Width        int          `json:"width,omitempty"`
	BarMode      string       `json:"barmode,omitempty"`
	PlotBgColor  string       `json:"plot_bgcolor,omitempty"`
	PaperBgColor string       `json:"paper_bgcolor,omitempty"`
	Font         *Font        `json:"font,omitempty"`
	XAxis        *Axis        `json:"xaxis,omitempty"`
	YAxis        *Axis        `json:"yaxis,omitempty"`
	Geo          *Geo         `json:"geo,omitempty"`
	Legend       *Legend      `json:"legend,omitempty"`
	UpdateMenus  []UpdateMenu `json:"updatemenus,omitempty"`
	Sliders      []Slider     `json:"sliders,omitempty"`
}

// Frame is one animation step.
type Frame struct {
	Name string  `json:"name"`
	Data []Trace `json:"data"`
}

// AnimationOptions are the arguments Plotly's animate method takes after the
// frame names.
type AnimationOptions struct {
	Frame       FrameOptions      `json:"frame"`
	Mode        string            `json:"mode"`
	FromCurrent bool              `json:"fromcurrent,omitempty"`
	Transition  TransitionOptions `json:"transition"`
}

type FrameOptions struct {
	Duration int  `json:"duration"`
	Redraw   bool `json:"redraw"`
}

type TransitionOptions struct {
	Duration int    `json:"duration"`
	Easing   string `json:"easing"`
}

type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

type UpdateMenu struct {
	Type       string   `json:"type"`
	Direction  string   `json:"direction,omitempty"`
	ShowActive bool     `json:"showactive"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	XAnchor    string   `json:"xanchor,omitempty"`
	YAnchor    string   `json:"yanchor,omitempty"`
	Buttons    []Button `json:"buttons"`
}

type CurrentValue struct {
	Prefix string `json:"prefix,omitempty"`
}

type SliderStep struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

type Slider struct {
	Active       int           `json:"active"`
	CurrentValue *CurrentValue `json:"currentvalue,omitempty"`
	Steps        []SliderStep  `json:"steps"`
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }

package chart

// Dark theme colors shared by every figure on the page.
const (
	darkBackground = "#222222"
	darkFont       = "white"
)

// CityColors is the hand-maintained display color per city. Names that are
// not listed fall back to DefaultPalette.
var CityColors = map[string]string{
	"Berlin":  "blue",
	"Yaounde": "green",
	"Dublin":  "orange",
	"Madrid":  "red",
}

// DefaultPalette is Plotly's default qualitative sequence.
var DefaultPalette = []string{
	"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
	"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// Continuous color scales. Plotly.js knows Blues and Viridis by name; ice is
// spelled out stop by stop.
var (
	ScaleBlues   = "Blues"
	ScaleViridis = "Viridis"
	ScaleIce     = stops(
		"rgb(3, 5, 18)", "rgb(25, 25, 51)", "rgb(44, 42, 87)", "rgb(58, 60, 125)",
		"rgb(62, 83, 160)", "rgb(62, 109, 178)", "rgb(72, 134, 187)", "rgb(89, 159, 196)",
		"rgb(114, 184, 205)", "rgb(149, 207, 216)", "rgb(192, 229, 232)", "rgb(234, 252, 253)",
	)
)

// ColorFor returns the mapped color for name, or the palette entry at
// position i when name is not in colors.
func ColorFor(colors map[string]string, name string, i int) string {
	if c, ok := colors[name]; ok {
		return c
	}
	if i < 0 {
		i = -i
	}
	return DefaultPalette[i%len(DefaultPalette)]
}

// ApplyDarkTheme sets the fixed background and font colors.
func ApplyDarkTheme(l *Layout) {
	l.PlotBgColor = darkBackground
	l.PaperBgColor = darkBackground
	l.Font = &Font{Color: darkFont}
	if l.Geo != nil {
		l.Geo.BgColor = darkBackground
	}
}

// stops spreads colors evenly over [0, 1] as a Plotly colorscale.
func stops(colors ...string) [][2]any {
	out := make([][2]any, len(colors))
	for i, c := range colors {
		out[i] = [2]any{float64(i) / float64(len(colors)-1), c}
	}
	return out
}

// solid is a colorscale that paints every value the same color.
func solid(color string) [][2]any {
	return [][2]any{{0.0, color}, {1.0, color}}
}

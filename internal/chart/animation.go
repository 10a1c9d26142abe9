package chart

import "github.com/couchcryptid/city-conditions-dashboard/internal/domain"

// Frame timing for every animated map.
const (
	frameDuration      = 1000 // ms per year
	transitionDuration = 0
	transitionEasing   = "linear"
)

// Animation returns the options for stepping through frames: a fixed frame
// duration, an immediate jump and no eased transition.
func Animation() AnimationOptions {
	return AnimationOptions{
		Frame:      FrameOptions{Duration: frameDuration, Redraw: true},
		Mode:       "immediate",
		Transition: TransitionOptions{Duration: transitionDuration, Easing: transitionEasing},
	}
}

// animateByYear fills fig with one frame per distinct year of t, in the
// order years first appear. The initial data is the first year's frame.
func animateByYear(fig *Figure, t domain.AggregateTable, scale any) {
	years := t.Distinct(domain.ColYear)
	zmin, zmax := valueRange(t)

	fig.Frames = make([]Frame, 0, len(years))
	for _, year := range years {
		fig.Frames = append(fig.Frames, Frame{
			Name: year,
			Data: []Trace{yearTrace(t, year, scale, zmin, zmax)},
		})
	}
	fig.Data = []Trace{}
	if len(fig.Frames) > 0 {
		fig.Data = fig.Frames[0].Data
	}

	fig.Layout.Sliders = []Slider{YearSlider(years)}
	fig.Layout.UpdateMenus = []UpdateMenu{playPause()}
}

// YearSlider builds a slider with one animate step per year.
func YearSlider(years []string) Slider {
	steps := make([]SliderStep, 0, len(years))
	for _, year := range years {
		steps = append(steps, SliderStep{
			Label:  year,
			Method: "animate",
			Args:   []any{[]string{year}, Animation()},
		})
	}
	return Slider{
		Active:       0,
		CurrentValue: &CurrentValue{Prefix: domain.ColYear + "="},
		Steps:        steps,
	}
}

func playPause() UpdateMenu {
	play := Animation()
	play.FromCurrent = true
	pause := AnimationOptions{
		Frame:      FrameOptions{Duration: 0, Redraw: true},
		Mode:       "immediate",
		Transition: TransitionOptions{Duration: 0, Easing: transitionEasing},
	}
	return UpdateMenu{
		Type:      "buttons",
		Direction: "left",
		X:         0.1,
		Y:         0,
		XAnchor:   "right",
		YAnchor:   "top",
		Buttons: []Button{
			{Label: "\u25B6", Method: "animate", Args: []any{nil, play}},
			{Label: "\u25A0", Method: "animate", Args: []any{[]any{nil}, pause}},
		},
	}
}

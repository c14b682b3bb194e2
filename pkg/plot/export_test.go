package plot

var BarRect = barRect

const (
	Height = height
	Bottom = bottom
	Top    = top
)

var BarColour = barColour

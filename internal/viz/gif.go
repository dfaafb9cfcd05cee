package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
)

var ErrNoFrames = errors.New("no frames captured")

const (
	gifCellW = 8
	gifCellH = 16
	// gif palettes hold at most 256 entries; the background takes one.
	maxGIFColors = 255
)

// Recorder rasterizes canvas snapshots into an animated gif. Each braille
// dot becomes a gifCellW/2 x gifCellH/4 block in its cell's color.
type Recorder struct {
	background color.Color
	foreground uint32
	delay      int
	frames     []*image.Paletted
}

// NewRecorder records frames shown for delay hundredths of a second each,
// drawn over the theme's background. Uncolored dots use the theme text color.
func NewRecorder(t Theme, delay int) *Recorder {
	return &Recorder{
		background: rgb(ColorValue(t.Background)),
		foreground: ColorValue(t.Text),
		delay:      max(delay, 1),
	}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture appends the current contents of c as one frame.
func (r *Recorder) Capture(c *Canvas) {
	palette := color.Palette{r.background}
	index := make(map[uint32]uint8)
	lookup := func(v uint32) uint8 {
		if v == NoColor {
			v = r.foreground
		}
		if i, ok := index[v]; ok {
			return i
		}
		if len(palette) > maxGIFColors {
			return uint8(len(palette) - 1)
		}
		palette = append(palette, rgb(v))
		index[v] = uint8(len(palette) - 1)
		return index[v]
	}

	img := image.NewPaletted(image.Rect(0, 0, c.Width*gifCellW, c.Height*gifCellH), nil)
	dotW, dotH := gifCellW/2, gifCellH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - brailleBase)
			if pattern <= 0 {
				continue
			}
			ci := lookup(c.Colors[row][col])
			baseX, baseY := col*gifCellW, row*gifCellH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, ci)
						}
					}
				}
			}
		}
	}
	img.Palette = palette
	r.frames = append(r.frames, img)
}

// Encode writes every captured frame as a looping gif.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

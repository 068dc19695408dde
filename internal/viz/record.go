package viz

import (
	"errors"
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// Pixel size of one terminal cell in recorded frames.
const (
	recordCellW = 8
	recordCellH = 16
)

var ErrNoFrames = errors.New("viz: no frames recorded")

// Recorder collects canvas frames for a GIF.
type Recorder struct {
	frames []*image.Paletted
	delay  int
}

// NewRecorder returns a recorder whose frame delay matches fps.
func NewRecorder(fps int) *Recorder {
	delay := 2
	if fps > 0 {
		delay = max(2, 100/fps)
	}
	return &Recorder{delay: delay}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture rasterizes the canvas, one block per braille dot in its cell
// color, over the background.
func (r *Recorder) Capture(c *Canvas, background colorful.Color) {
	pal := palette.Plan9
	imgW, imgH := c.Width*recordCellW, c.Height*recordCellH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), pal)

	bg := uint8(pal.Index(background.Clamped()))
	for i := range img.Pix {
		img.Pix[i] = bg
	}

	dotW, dotH := recordCellW/2, recordCellH/4
	white := uint8(pal.Index(colorful.Color{R: 1, G: 1, B: 1}))
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - brailleBlank)
			if pattern <= 0 {
				continue
			}
			idx := white
			if c.inked[row][col] {
				idx = uint8(pal.Index(c.Colors[row][col].Clamped()))
			}
			baseX, baseY := col*recordCellW, row*recordCellH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

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

// Save writes the recording to path and clears it.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := r.Encode(f); err != nil {
		return err
	}
	r.frames = nil
	return nil
}

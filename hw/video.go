package hw

// Video timing of the board, in video-domain ticks.
const (
	TicksPerLine = 192 // one scanline, 64us at the video tick rate
	NumLines     = 264 // lines per frame, 224 visible + 40 blanking
	VBlankLine   = 224 // first blanking line
)

// Raster models the video timing chain as counters: tick within line, line
// within frame. Its single output is the vertical blanking level feeding
// the interrupt latch; sync pulse shapes and pixel generation are not
// modeled.
type Raster struct {
	Dot   int    // tick within the current line
	Line  int    // current line
	Frame uint32 // frames since reset
}

func (r *Raster) Reset() {
	r.Dot = 0
	r.Line = 0
	r.Frame = 0
}

// Tick advances the raster by one video-domain tick.
func (r *Raster) Tick() {
	r.Dot++
	if r.Dot >= TicksPerLine {
		r.Dot = 0
		r.Line++
		if r.Line >= NumLines {
			r.Line = 0
			r.Frame++
		}
	}
}

// VBlank reports whether the raster is inside vertical blanking: high
// during the blanking lines at the bottom of the frame. The falling edge
// at the frame wrap is what arms the interrupt latch.
func (r *Raster) VBlank() bool {
	return r.Line >= VBlankLine
}

// Level implements Signal, exposing the blanking level to the fabric.
func (r *Raster) Level() bool {
	return r.VBlank()
}

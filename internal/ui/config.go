package ui

// Config contains presentation settings. None of these affect core
// interpreter behavior.
type Config struct {
	Title    string
	Scale    int  // window pixels per framebuffer pixel
	ShowGrid bool // draw pixel grid lines
	ShowFPS  bool // draw a frame-rate counter
}

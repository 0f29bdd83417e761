// Command glyphcheck renders a GlyphProvider's code points as ASCII art,
// for checking a glyph table without booting the whole machine.
package main

import (
	"flag"
	"fmt"
	"os"

	"beebgo/internal/video"
)

func main() {
	start := flag.Int("start", 0, "first code point to render")
	count := flag.Int("count", 96, "number of code points to render")
	flag.Parse()

	var font video.GlyphProvider = video.PatternFont{}

	for code := *start; code < *start+*count; code++ {
		fmt.Fprintf(os.Stdout, "code %3d (%#02x):\n", code, code)
		glyph := font.Glyph(byte(code))
		for _, row := range glyph {
			for bit := 7; bit >= 0; bit-- {
				if row&(1<<uint(bit)) != 0 {
					fmt.Fprint(os.Stdout, "#")
				} else {
					fmt.Fprint(os.Stdout, ".")
				}
			}
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintln(os.Stdout)
	}
}

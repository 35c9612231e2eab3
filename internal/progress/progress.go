// Package progress renders a counter bar for the probe phase.
package progress

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// template mirrors "[####    ]  12/40" with the position always shown.
const template pb.ProgressBarTemplate = `{{bar . "[" "#" "#" " " "]"}} {{counters . }} {{percent . }}`

type Bar struct {
	bar *pb.ProgressBar
}

// Start draws a bar for total steps on w.
func Start(total int, w io.Writer) *Bar {
	bar := template.New(total)
	bar.SetWriter(w)
	bar.Start()
	return &Bar{bar: bar}
}

func (b *Bar) Increment() { b.bar.Increment() }

func (b *Bar) Finish() { b.bar.Finish() }

// Nop satisfies the same methods without drawing anything.
type Nop struct{}

func (Nop) Increment() {}
func (Nop) Finish()    {}

package main

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/pisle-planner/internal/habitat"
	"github.com/osse101/pisle-planner/internal/scale"
)

// output prints locale-aware numbers next to the game's short notation
type output struct {
	p *message.Printer
	w io.Writer
}

func newOutput(w io.Writer) *output {
	return &output{p: message.NewPrinter(language.English), w: w}
}

func (o *output) printf(format string, args ...any) {
	o.p.Fprintf(o.w, format, args...)
}

// amount renders v as "23.81g (23,810,000,000)"
func (o *output) amount(v float64) string {
	return o.p.Sprintf("%s (%.0f)", scale.Format(v), v)
}

func (o *output) metrics(m habitat.Metrics) {
	o.printf("  %-16s %10.2f gold/s  %10.4f per cost  %10.4f per heart\n",
		m.Habitat.Name(), m.GoldPerSecond, m.GoldPerSecondPerCost, m.GoldPerSecondPerHeart)
}

func (o *output) basis(c habitat.Collection) {
	for _, k := range c.Kinds() {
		b, _ := c.Get(k)
		in := habitat.FormatInput(b)
		o.printf("  %-16s level %-4d gold %-10s cost %-10s hearts %-10s x%s\n",
			k.Name(), b.Level, in.Gold, in.Cost, in.Hearts, in.Multiplier)
	}
}

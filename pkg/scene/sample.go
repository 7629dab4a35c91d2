package scene

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

var sampleLabels = []string{
	"A", "Hello", "Skull", "Danger: do not push", "Button", "Chocolate", "B", "Dog",
}

// Sample returns the demo scene: eight labels in a 200 wide container with
// spacing 4 by 16.
func Sample() *Scene {
	s := &Scene{
		Width:             Float(200),
		HorizontalSpacing: Float(4),
		VerticalSpacing:   Float(16),
	}
	for i, l := range sampleLabels {
		s.Items = append(s.Items, Item{ID: fmt.Sprintf("item-%d", i), Label: l})
	}
	return s
}

var words = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do
eiusmod tempor incididunt ut labore et dolore magna aliqua wrap line flow`)

// Random returns a scene of n labels of one to four words each, chosen
// deterministically from seed.
func Random(seed uint64, n int, width float64) *Scene {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s := &Scene{Width: Float(width)}
	for i := range n {
		id := fmt.Sprintf("r%d", i)
		parts := make([]string, 1+rng.IntN(4))
		for j := range parts {
			parts[j] = words[rng.IntN(len(words))]
		}
		s.Items = append(s.Items, Item{ID: id, Label: strings.Join(parts, " ")})
	}
	return s
}

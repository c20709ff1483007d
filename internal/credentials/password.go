package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var words = []string{
	"maple", "river", "cedar", "meadow", "stone", "birch", "harbor",
	"summit", "grove", "willow", "prairie", "ember", "creek", "ridge",
	"aspen", "coral", "sage", "linden", "moss", "heron", "fern",
	"oak", "pine", "lake", "field", "brook", "cliff", "dune",
	"bloom", "wind", "frost", "dawn", "reef", "vale", "peak",
	"screening", "festival", "gather", "lantern", "canopy", "forage",
}

// Password returns a word-word-NN password. The two words always differ and
// NN is in 10..99.
func (g *Generator) Password() (string, error) {
	first, err := g.intn(len(words))
	if err != nil {
		return "", fmt.Errorf("password entropy: %w", err)
	}
	second := first
	for second == first {
		if second, err = g.intn(len(words)); err != nil {
			return "", fmt.Errorf("password entropy: %w", err)
		}
	}
	num, err := g.intn(90)
	if err != nil {
		return "", fmt.Errorf("password entropy: %w", err)
	}
	return fmt.Sprintf("%s-%s-%d", words[first], words[second], num+10), nil
}

func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.rand, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

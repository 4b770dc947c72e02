package selector

import (
	"image"

	"github.com/bodgit/retroimg/dither"
	"github.com/bodgit/retroimg/palette"
	"github.com/bodgit/retroimg/standard"
	"golang.org/x/sync/errgroup"
)

type candidate struct {
	subPalette standard.SubPalette
	background int
	palette    palette.Palette
	loss       uint64
}

// candidates enumerates every sub-palette with every background color,
// sub-palette major.
func candidates(subPalettes []standard.SubPalette) []candidate {
	backgrounds := len(standard.CGA())
	cs := make([]candidate, 0, len(subPalettes)*backgrounds)
	for _, sp := range subPalettes {
		for bg := 0; bg < backgrounds; bg++ {
			cs = append(cs, candidate{
				subPalette: sp,
				background: bg,
				palette:    sp.Palette(bg),
			})
		}
	}
	return cs
}

// best scores every candidate concurrently and returns the one with the
// lowest loss. Ties go to the earliest candidate in enumeration order.
func best(h histogram, subPalettes []standard.SubPalette, metric palette.Metric) (candidate, error) {
	cs := candidates(subPalettes)
	if len(cs) == 0 {
		return candidate{}, dither.ErrEmptyPalette
	}

	var g errgroup.Group
	for i := range cs {
		i := i
		g.Go(func() error {
			cs[i].loss = h.score(cs[i].palette, metric)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return candidate{}, err
	}

	winner := 0
	for i := range cs {
		if cs[i].loss < cs[winner].loss {
			winner = i
		}
	}
	return cs[winner], nil
}

// restrict picks at most n entries of p to represent m, returning their
// indices in ascending order along with the loss of mapping m onto them. The
// indices stay those of p so they remain valid hardware pixel values.
func restrict(m image.Image, h histogram, p palette.Palette, n int, metric palette.Metric) ([]int, uint64) {
	kept := reduce(m, nearestIn(p, metric), n)
	if len(kept) == 0 {
		return nil, h.score(p, metric)
	}

	var (
		allowed []int
		sub     palette.Palette
	)
	for i, c := range p {
		if p.Index(c) == i && kept.Contains(c) {
			allowed = append(allowed, i)
			sub = append(sub, c)
		}
	}
	return allowed, h.score(sub, metric)
}

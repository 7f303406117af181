package compositor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/prism/pkg/ui/strip"
	"github.com/odvcencio/prism/pkg/ui/visual"
)

// Region places a visual on the screen.
type Region struct {
	Visual  visual.Visual
	Rect    Rect
	Options visual.RenderOptions
}

// RenderRegions renders every region concurrently, then paints them in
// order so later regions cover earlier ones. Options.Height defaults to the
// rect height. Nothing is painted if ctx is cancelled first.
func RenderRegions(ctx context.Context, screen *Screen, regions []Region) error {
	rendered := make([][]strip.Strip, len(regions))

	g, gctx := errgroup.WithContext(ctx)
	for i, region := range regions {
		if region.Visual == nil || region.Rect.IsEmpty() {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts := region.Options
			if opts.Height == 0 {
				opts.Height = region.Rect.Height
			}
			rendered[i] = region.Visual.RenderStrips(region.Rect.Width, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, region := range regions {
		if rendered[i] != nil {
			screen.Sub(region.Rect).PaintStrips(0, 0, rendered[i])
		}
	}
	return nil
}

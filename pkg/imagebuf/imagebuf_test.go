package imagebuf

import (
	"testing"

	"github.com/kestrel-render/raycore/pkg/radiance"
)

func TestAddSampleAverages(t *testing.T) {
	b := New(4, 4)
	b.AddSample(1, 1, radiance.New(1, 0, 0))
	b.AddSample(1, 1, radiance.New(0, 1, 0))

	got := b.Resolve(1, 1)
	want := radiance.New(0.5, 0.5, 0)
	if got != want {
		t.Errorf("Resolve(1,1) = %v, want %v", got, want)
	}
}

func TestAddSplatDoesNotCountAsSample(t *testing.T) {
	b := New(4, 4)
	b.AddSample(2, 2, radiance.New(1, 1, 1))
	b.AddSplat(2, 2, radiance.New(1, 1, 1))

	// Two units summed, but only one counted sample: splats ride along on
	// whatever weight the caller already normalized them by.
	got := b.Resolve(2, 2)
	want := radiance.New(2, 2, 2)
	if got != want {
		t.Errorf("Resolve(2,2) = %v, want %v", got, want)
	}
}

func TestOutOfBoundsWritesAreDropped(t *testing.T) {
	b := New(4, 4)
	b.AddSample(-1, 0, radiance.White)
	b.AddSplat(100, 100, radiance.White)
	// No panic, and nothing leaked into an adjacent valid cell.
	if got := b.Resolve(0, 0); got != radiance.Black {
		t.Errorf("Resolve(0,0) = %v, want zero", got)
	}
}

func TestResolveEmptyCellIsBlack(t *testing.T) {
	b := New(2, 2)
	if got := b.Resolve(0, 0); got != radiance.Black {
		t.Errorf("Resolve on empty cell = %v, want Black", got)
	}
}

func TestConcurrentWritesDoNotRace(t *testing.T) {
	b := New(8, 8)
	done := make(chan struct{})
	for g := 0; g < 16; g++ {
		go func(n int) {
			for i := 0; i < 100; i++ {
				b.AddSample(n%8, (n+i)%8, radiance.New(1, 1, 1))
			}
			done <- struct{}{}
		}(g)
	}
	for g := 0; g < 16; g++ {
		<-done
	}
}

func TestToImageProducesCorrectDimensions(t *testing.T) {
	b := New(3, 5)
	img := b.ToImage()
	bounds := img.Bounds()
	if bounds.Dx() != 3 || bounds.Dy() != 5 {
		t.Errorf("ToImage() dims = %dx%d, want 3x5", bounds.Dx(), bounds.Dy())
	}
}

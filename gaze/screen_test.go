package gaze

import (
	"math"
	"testing"
)

func TestScreenAngles(t *testing.T) {
	screen := Screen{DistanceCM: 60, PixelSizeCM: 0.027}
	if err := screen.Validate(); err != nil {
		t.Fatalf("valid geometry rejected: %v", err)
	}
	deg := screen.PixelsToDegrees(100)
	if deg < 2.5 || deg > 2.6 {
		t.Errorf("100 px at 60 cm should subtend about 2.58 degrees, got %v", deg)
	}
	if screen.PixelsToDegrees(-100) != deg {
		t.Error("displacement sign should not affect the subtended angle")
	}
	px := screen.DegreesToPixels(deg)
	if math.Abs(px-100) > 1e-9 {
		t.Errorf("angle conversion did not round trip: %v px", px)
	}
	if screen.PixelsToDegrees(10) >= screen.PixelsToDegrees(20) {
		t.Error("subtended angle should grow with displacement")
	}
}

func TestScreenValidate(t *testing.T) {
	if err := (Screen{DistanceCM: 0, PixelSizeCM: 0.027}).Validate(); err == nil {
		t.Error("zero viewing distance should be rejected")
	}
	if err := (Screen{DistanceCM: 60, PixelSizeCM: -1}).Validate(); err == nil {
		t.Error("negative pixel size should be rejected")
	}
	if err := (Screen{DistanceCM: math.NaN(), PixelSizeCM: 0.027}).Validate(); err == nil {
		t.Error("NaN viewing distance should be rejected")
	}
}

package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eastgate/dotmatrix/internal/ppu"
)

// solidFrame returns a frame filled with the given RGBA pixel.
func solidFrame(r, g, b uint8) []byte {
	fb := make([]byte, ppu.FrameSize)
	for i := 0; i < len(fb); i += 4 {
		fb[i] = r
		fb[i+1] = g
		fb[i+2] = b
		fb[i+3] = 0xFF
	}
	return fb
}

func TestBrightness(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		shade   int
	}{
		{0, 0, 0, 0},
		{63, 63, 63, 0},
		{64, 64, 64, 1},
		{155, 188, 15, 1}, // lightest DMG green
		{192, 192, 192, 3},
		{255, 255, 255, 3},
	}

	for _, tt := range tests {
		if got := brightness(tt.r, tt.g, tt.b); got != tt.shade {
			t.Errorf("brightness(%d, %d, %d): expected %d, got %d", tt.r, tt.g, tt.b, tt.shade, got)
		}
	}
}

func TestPresentFrameClearsAndHomes(t *testing.T) {
	var buf bytes.Buffer
	term := &Terminal{out: &buf}

	term.frameCount = 1
	term.presentFrame(solidFrame(0x0F, 0x38, 0x0F))

	out := buf.String()
	if !strings.HasPrefix(out, "\x1b[2J\x1b[H") {
		t.Error("expected the frame to start by clearing and homing the cursor")
	}
	if !strings.Contains(out, shadeBlocks[0]) {
		t.Error("expected the darkest colour block in the output")
	}
	if got := strings.Count(out, shadeBlocks[0]); got != ppu.ScreenWidth*ppu.ScreenHeight {
		t.Errorf("expected %d pixel blocks, got %d", ppu.ScreenWidth*ppu.ScreenHeight, got)
	}
}

func TestRenderFrameASCII(t *testing.T) {
	var buf bytes.Buffer
	term := &Terminal{out: &buf, ascii: true}

	term.renderFrame(&buf, solidFrame(0xFF, 0xFF, 0xFF))

	out := buf.String()
	if strings.Contains(out, "\x1b[48;5;") {
		t.Error("expected no colour escapes in ASCII mode")
	}
	if got := strings.Count(out, string(shadeRunes[3])); got != ppu.ScreenWidth*ppu.ScreenHeight {
		t.Errorf("expected %d shade runes, got %d", ppu.ScreenWidth*ppu.ScreenHeight, got)
	}
	if got := strings.Count(out, "\n"); got != ppu.ScreenHeight+3 {
		t.Errorf("expected %d lines, got %d", ppu.ScreenHeight+3, got)
	}
}

// Noise volume preview tool - browse slices of the volume used by the
// volume ring effect, with sliders for its build parameters.
//
// Usage: go run ./cmd/noisepreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/ringfx/config"
	"github.com/pthm-cable/ringfx/noise"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// slider draws a labeled raygui slider and returns the new value.
func slider(x float32, y *float32, label, lo, hi string, value, minV, maxV float32, shown string) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		lo, hi,
		value, minV, maxV,
	)
	rl.DrawText(shown, int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return next
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	initial := cfg.Noise
	params := initial

	rl.InitWindow(windowWidth, windowHeight, "Noise Volume Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	var (
		vol        *noise.Volume
		texture    rl.Texture2D
		texSize    int
		slice      int
		dirty      = true
		sliceDirty bool
		basisErr   error
	)
	defer func() {
		if texSize > 0 {
			rl.UnloadTexture(texture)
		}
	}()

	for !rl.WindowShouldClose() {
		if dirty {
			var b noise.Builder
			b, basisErr = noise.BuilderFromConfig(params)
			if basisErr != nil {
				b.Basis = noise.BasisPerlin
			}
			vol = b.Build()
			if vol.Size() != texSize {
				if texSize > 0 {
					rl.UnloadTexture(texture)
				}
				img := rl.GenImageColor(vol.Size(), vol.Size(), rl.Black)
				texture = rl.LoadTextureFromImage(img)
				rl.UnloadImage(img)
				texSize = vol.Size()
			}
			slice = min(slice, vol.Size()-1)
			dirty = false
			sliceDirty = true
		}
		if sliceDirty {
			updateTexture(texture, vol.Slice(slice))
			sliceDirty = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(texSize), Height: float32(texSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		minVal, maxVal, avg := sliceStats(vol.Slice(slice))
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Avg: %.3f", minVal, maxVal, avg), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Slice: %d/%d  Checksum: %.4f", slice, vol.Size()-1, vol.Checksum()), 15, statsY+20, 16, rl.DarkGray)
		if basisErr != nil {
			rl.DrawText(basisErr.Error(), 15, statsY+40, 14, rl.Red)
		}

		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Noise Volume Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		newSize := int(slider(panelX, &panelY, "Size (cells per axis)", "16", "128",
			float32(params.Size), 16, 128, fmt.Sprintf("%d", params.Size)))
		if newSize != params.Size {
			params.Size = newSize
			dirty = true
		}

		newFreq := slider(panelX, &panelY, "Frequency (over the unit cube)", "0.5", "16",
			float32(params.Frequency), 0.5, 16, fmt.Sprintf("%.2f", params.Frequency))
		if float64(newFreq) != params.Frequency {
			params.Frequency = float64(newFreq)
			dirty = true
		}

		newSeed := int64(slider(panelX, &panelY, "Seed", "0", "99999",
			float32(params.Seed), 0, 99999, fmt.Sprintf("%d", params.Seed)))
		if newSeed != params.Seed {
			params.Seed = newSeed
			dirty = true
		}

		newSlice := int(slider(panelX, &panelY, "Z slice", "0", "max",
			float32(slice), 0, float32(vol.Size()-1), fmt.Sprintf("%d", slice)))
		if newSlice != slice {
			slice = newSlice
			sliceDirty = true
		}

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Basis: "+params.Basis) {
			if params.Basis == string(noise.BasisOpenSimplex) {
				params.Basis = string(noise.BasisPerlin)
			} else {
				params.Basis = string(noise.BasisOpenSimplex)
			}
			dirty = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Center Slice") {
			slice = vol.Size() / 2
			sliceDirty = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			dirty = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = initial
			dirty = true
		}
		panelY += 55

		snippet := yamlSnippet(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range strings.Split(snippet, "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
		}

		rl.EndDrawing()
	}
}

// yamlSnippet renders the noise section as it appears in config.yaml.
func yamlSnippet(c config.NoiseConfig) string {
	data, err := yaml.Marshal(struct {
		Noise config.NoiseConfig `yaml:"noise"`
	}{c})
	if err != nil {
		return "# " + err.Error()
	}
	return strings.TrimRight(string(data), "\n")
}

func sliceStats(values []float32) (minVal, maxVal, avg float32) {
	minVal, maxVal = 1, 0
	var total float32
	for _, v := range values {
		total += v
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if len(values) > 0 {
		avg = total / float32(len(values))
	}
	return minVal, maxVal, avg
}

// updateTexture uploads a density slice with a dark blue to white gradient.
func updateTexture(texture rl.Texture2D, slice []float32) {
	pixels := make([]color.RGBA, len(slice))
	for i, v := range slice {
		var r, g, b uint8
		switch {
		case v < 0.25:
			t := v / 0.25
			r, g, b = uint8(10+t*30), uint8(20+t*60), uint8(60+t*100)
		case v < 0.5:
			t := (v - 0.25) / 0.25
			r, g, b = uint8(40+t*20), uint8(80+t*120), uint8(160+t*40)
		case v < 0.75:
			t := (v - 0.5) / 0.25
			r, g, b = uint8(60+t*140), uint8(200-t*40), uint8(200-t*150)
		default:
			t := min((v-0.75)/0.25, 1)
			r, g, b = uint8(200+t*55), uint8(160+t*95), uint8(50+t*205)
		}
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}

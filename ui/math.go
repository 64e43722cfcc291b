package ui

import "math"

const pi = math.Pi

func acos(x float32) float32 { return float32(math.Acos(float64(x))) }

func sin(x float32) float32 { return float32(math.Sin(float64(x))) }

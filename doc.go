// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glitter is a software 2D rasterizer: it scan converts polygons
// into coverage and composites solid colors or images through that
// coverage into premultiplied surfaces.
//
// # Quick start
//
//	s, _ := glitter.NewSurface(256, 256, glitter.FormatARGB32)
//	r := glitter.New(s)
//
//	p := glitter.NewPath()
//	p.MoveTo(128, 16)
//	p.LineTo(240, 240)
//	p.LineTo(16, 240)
//	p.Close()
//	_ = r.Fill(glitter.OpOver, glitter.SolidPattern(glitter.RGBA(1, 0, 0, 1)), p, glitter.FillRuleNonZero)
//	_ = s.SavePNG("triangle.png")
//
// # Antialiasing
//
// Antialiased fills sample each pixel row on a grid of sub-rows and
// compute horizontal coverage exactly within each sub-row. Rows crossed
// only by edges that span the whole row are rendered analytically.
// AntialiasNone samples pixel centers and produces fully opaque or fully
// transparent pixels.
//
// # Compositing
//
// Every operation is the composition of a source pattern, a shape and
// the clip. Operators that are not bounded by the shape, such as OpIn,
// also clear the part of the clip the shape does not cover. Observe the
// steps taken with WithStrategyObserver.
//
// # Errors
//
// Operations return nil on success, including when they have no visible
// effect. Invalid arguments are reported and leave the target usable.
// Out-of-memory failures also put the target surface into an error
// state that Surface.Clear resets.
//
// # Concurrency
//
// A Renderer and its target must be used from one goroutine at a time.
// Glyph caches may be shared between renderers.
package glitter

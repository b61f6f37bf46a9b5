// Package gooey is the geometry kernel of the swipe effect.
//
// A [Kernel] maps a progress value in [0,1] to the shapes drawn on top of a
// list row while it is swiped:
//
//   - the circle travelling with the finger, shrinking once the gap is passed
//   - the edge, a teardrop growing out of the row's leading edge
//   - the joint, which bridges edge and circle with tangent curves before the
//     gap and leaves a droplet behind after it
//   - the snapshot transform, sliding and fading the row's content
//   - the icon transform, fading and scaling the action icon past the gap
//
// The kernel is pure: the same progress always yields the same [Frame].
//
//	k := gooey.NewKernel(gooey.DefaultParams(), geom.Sz(375, 88), 0.5)
//	f := k.Frame(0.35)
//	fmt.Println(f.Circle.Radius, f.Snapshot.Opacity)
//
// # Phases
//
// Progress up to [Params.GapProgress] is the approach phase: the circle keeps
// its radius while it moves right and the edge widens. Past the gap the
// circle, edge and joint collapse and the icon disappears, its scale
// overshooting below zero just before progress reaches 1.
package gooey

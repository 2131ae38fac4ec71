package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacehole-rogue/zenith_sky/internal/render"
	"github.com/spacehole-rogue/zenith_sky/internal/sky"
	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

// frameStep is the synthetic tick interval for headless rendering, in milliseconds.
const frameStep = 1000.0 / 60

type renderFlags struct {
	out    string
	frames int
	size   float64
	dpr    float64
	zoom   float64
	panX   float64
	panY   float64
	hover  string
	sel    string
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render [payload]",
		Short: "Render a frame to PNG without opening a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := a.loadPayload(a.payloadPath(args))
			if err != nil {
				return err
			}
			res, err := renderFrame(a, payload, f)
			if err != nil {
				return err
			}
			c := res.renderer.Canvas()
			if err := c.WritePNG(f.out); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "wrote %s (%dx%d)\n", f.out, c.Size(), c.Size())
			if obj := res.sky.Object(res.state.Selected); obj != nil {
				fmt.Fprintf(out, "selected %s\n", obj.Name)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.out, "out", "o", "sky.png", "output PNG path")
	fl.IntVar(&f.frames, "frames", 120, "ticks to run before capturing, so zoom and pan settle")
	fl.Float64Var(&f.size, "size", 0, "logical frame size (default view.max_size)")
	fl.Float64Var(&f.dpr, "dpr", 1, "device pixel ratio")
	fl.Float64Var(&f.zoom, "zoom", 1, "zoom factor")
	fl.Float64Var(&f.panX, "pan-x", 0, "horizontal pan in logical pixels")
	fl.Float64Var(&f.panY, "pan-y", 0, "vertical pan in logical pixels")
	fl.StringVar(&f.hover, "hover", "", "hover the named object")
	fl.StringVar(&f.sel, "select", "", "select the named object")
	return cmd
}

// frameResult is the final frame and the view state it was drawn with.
type frameResult struct {
	renderer *render.Renderer
	sky      *world.Sky
	state    sky.ViewState
}

// renderFrame drives a controller through the same input calls the window uses
// and returns the final frame.
func renderFrame(a *app, payload *world.Payload, f renderFlags) (frameResult, error) {
	size := f.size
	if size <= 0 {
		size = a.cfg.View.MaxSize
	}
	r := render.NewRenderer(a.log.Named("render"), a.cfg.Effects.Seed)
	ctrl := sky.NewController(world.Normalize(payload, a.log),
		sky.Box{Width: size, Height: size, DevicePixelRatio: f.dpr},
		sky.Options{View: a.cfg.View, Effects: a.cfg.Effects, Logger: a.log, Renderer: r})
	defer ctrl.Teardown()

	loop := sky.NewLoop(ctrl.Tick)
	loop.Start()
	now := 0.0
	step := func(n int) {
		now += frameStep * float64(loop.Drive(now, frameStep, n))
	}
	step(1)

	if f.zoom != 1 {
		ctrl.ZoomBy(f.zoom)
	}
	ctrl.PanTo(f.panX, f.panY)
	step(max(f.frames-1, 0))

	if f.sel != "" {
		obj, x, y, err := locate(ctrl, f.sel)
		if err != nil {
			return frameResult{}, err
		}
		if !ctrl.OnClick(x, y) || ctrl.State().Selected != obj.ID {
			return frameResult{}, fmt.Errorf("could not select %q: another object covers it", f.sel)
		}
	}
	if f.hover != "" {
		_, x, y, err := locate(ctrl, f.hover)
		if err != nil {
			return frameResult{}, err
		}
		ctrl.OnPointerMove(x, y)
	}
	step(1)

	a.log.Debug("frame rendered",
		zap.Uint64("ticks", ctrl.Frames()),
		zap.Float64("zoom", ctrl.State().Zoom),
		zap.Float64("pan_x", ctrl.State().PanX))
	return frameResult{renderer: r, sky: ctrl.Sky(), state: ctrl.State()}, nil
}

// locate finds the named object and its current screen position.
func locate(ctrl *sky.Controller, name string) (*world.CelestialObject, float64, float64, error) {
	obj := ctrl.Sky().FindByName(name)
	if obj == nil {
		return nil, 0, 0, fmt.Errorf("no object named %q", name)
	}
	x, y := sky.Project(obj.X, obj.Y, ctrl.State(), ctrl.Frame())
	return obj, x, y, nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/imageview"
	"github.com/gogpu/imageview/camera"
	"github.com/gogpu/imageview/canvas"
	"github.com/gogpu/imageview/codec"
	"github.com/gogpu/imageview/marker"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one frame with its markers to PNG",
	Long: `Render one frame with its markers to PNG.

The frame comes either from a JSON render request (--request), as sent to
the server's render endpoint, or from a compressed image file (--image)
with optional markers (--markers) and calibration (--camera-info).

Without --width and --height the output takes the frame's native size.

Examples:
  imageview render --image frame.png --markers markers.json -o out.png
  imageview render --request req.json --width 640 --height 480 --zoom fill -o out.png`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String("request", "", "render request JSON file")
	renderCmd.Flags().String("image", "", "compressed image file (png, jpeg, webp, bmp, tiff, gif)")
	renderCmd.Flags().String("markers", "", "JSON array of ImageMarker or ImageMarkerArray messages")
	renderCmd.Flags().String("camera-info", "", "CameraInfo JSON file used to un-distort markers")
	renderCmd.Flags().StringP("output", "o", "out.png", "output PNG file")
	renderCmd.Flags().String("hitmap", "", "also write the hit-map PNG to this file")
	renderCmd.Flags().Int("width", 0, "viewport width (default: frame width)")
	renderCmd.Flags().Int("height", 0, "viewport height (default: frame height)")
	renderCmd.Flags().String("zoom", "fit", "zoom mode (fit|fill|other)")
	renderCmd.Flags().Bool("smoothing", false, "smooth the frame when it is scaled")

	viper.BindPFlag("render.width", renderCmd.Flags().Lookup("width"))
	viper.BindPFlag("render.height", renderCmd.Flags().Lookup("height"))
	viper.BindPFlag("render.zoom", renderCmd.Flags().Lookup("zoom"))
	viper.BindPFlag("render.smoothing", renderCmd.Flags().Lookup("smoothing"))
}

func runRender(cmd *cobra.Command, args []string) error {
	req, err := loadRequest(cmd)
	if err != nil {
		return err
	}

	width, height := viper.GetInt("render.width"), viper.GetInt("render.height")
	if width > 0 && height > 0 {
		req.Viewport = imageview.Dimensions{Width: width, Height: height}
	}
	if cmd.Flags().Changed("zoom") || req.ZoomMode == "" {
		req.ZoomMode = imageview.ZoomMode(viper.GetString("render.zoom"))
	}
	if viper.IsSet("render.smoothing") {
		req.Options.ImageSmoothing = viper.GetBool("render.smoothing")
	}
	if req.Viewport.Empty() {
		req.Options.ResizeCanvas = true
	}

	w := imageview.NewWorker(imageview.WithNotifier(imageview.NotifierFunc(func(n imageview.Notification) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", n.Message, n.Details)
	})))
	defer w.Close()

	ctx := context.Background()
	size := req.Viewport
	if size.Empty() {
		size = imageview.Dimensions{Width: 1, Height: 1}
	}
	const id = "cli"
	if err := w.Initialize(ctx, id, canvas.New(size.Width, size.Height)); err != nil {
		return err
	}
	dims, err := w.RenderImage(ctx, id, req)
	if err != nil {
		return err
	}
	if dims == nil {
		return fmt.Errorf("request has no frame to render")
	}

	img, err := w.Snapshot(ctx, id)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	if err := writePNG(output, img); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("hitmap"); path != "" {
		hit, err := w.HitmapSnapshot(ctx, id)
		if err != nil {
			return err
		}
		if err := writePNG(path, hit); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %dx%d frame to %s (%dx%d)\n",
		dims.Width, dims.Height, output, img.Rect.Dx(), img.Rect.Dy())
	return nil
}

func loadRequest(cmd *cobra.Command) (*imageview.RenderRequest, error) {
	flags := cmd.Flags()
	requestPath, _ := flags.GetString("request")
	imagePath, _ := flags.GetString("image")

	var req imageview.RenderRequest
	switch {
	case requestPath != "" && imagePath != "":
		return nil, fmt.Errorf("use either --request or --image, not both")
	case requestPath != "":
		if err := readJSON(requestPath, &req); err != nil {
			return nil, err
		}
	case imagePath != "":
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return nil, fmt.Errorf("reading image: %w", err)
		}
		req.Image = &codec.Frame{
			Format: codec.NormalizeFormat(filepath.Ext(imagePath)),
			Data:   data,
		}
		req.Datatype = codec.CompressedDatatypes[0]
		req.PanZoom = imageview.PanZoom{Scale: 1}
	default:
		return nil, fmt.Errorf("one of --request or --image is required")
	}

	if path, _ := flags.GetString("markers"); path != "" {
		var msgs marker.Messages
		if err := readJSON(path, &msgs); err != nil {
			return nil, err
		}
		req.Markers.Markers = append(req.Markers.Markers, msgs...)
	}
	if path, _ := flags.GetString("camera-info"); path != "" {
		var info camera.Info
		if err := readJSON(path, &info); err != nil {
			return nil, err
		}
		req.Markers.CameraInfo = &info
		req.Markers.TransformMarkers = true
	}
	return &req, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

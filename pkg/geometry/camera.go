package geometry

import (
	"math"

	"github.com/dfoxwell/lightdist/pkg/core"
)

// CameraConfig describes a perspective camera: eye position, look-at target,
// up direction, output resolution/aspect, vertical field of view, and a thin
// lens aperture/focus distance for depth of field.
type CameraConfig struct {
	Center        core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	Width         int
	AspectRatio   float64
	VFov          float64
	Aperture      float64
	FocusDistance float64
}

// MergeCameraConfig overlays override's non-zero fields onto base, the
// "zero value means unset" convention every NewXScene(cameraOverrides...)
// constructor in pkg/scene relies on.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	merged := base
	if override.Center != (core.Vec3{}) {
		merged.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		merged.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		merged.Up = override.Up
	}
	if override.Width > 0 {
		merged.Width = override.Width
	}
	if override.AspectRatio > 0 {
		merged.AspectRatio = override.AspectRatio
	}
	if override.VFov > 0 {
		merged.VFov = override.VFov
	}
	if override.Aperture > 0 {
		merged.Aperture = override.Aperture
	}
	if override.FocusDistance > 0 {
		merged.FocusDistance = override.FocusDistance
	}
	return merged
}

// Camera is a thin-lens perspective camera. GetRay maps a pixel plus an
// antialiasing sample and a lens sample to a world-space ray, the same
// pinhole/depth-of-field model pkg/renderer.Camera uses for its fixed
// viewport, generalized here to an arbitrary eye/look-at/up/fov/aperture.
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	imageHeight     int
}

// NewCamera builds a Camera from config, deriving its viewport basis from
// the look-at/up/fov/aspect the way pkg/renderer.NewCamera derives its fixed
// 16:9 pinhole basis, generalized to an arbitrary eye and focus distance.
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	imageHeight := 1
	if config.AspectRatio > 0 {
		imageHeight = int(float64(config.Width) / config.AspectRatio)
		if imageHeight < 1 {
			imageHeight = 1
		}
	}

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		imageHeight:     imageHeight,
	}
}

// GetRay generates a world-space ray through pixel (i, j), jittered within
// the pixel by pixelSample and, for a non-pinhole aperture, offset on the
// lens by lensSample.
func (c *Camera) GetRay(i, j int, pixelSample, lensSample core.Vec2) core.Ray {
	width := float64(c.config.Width)
	height := float64(c.imageHeight)

	s := (float64(i) + pixelSample.X) / width
	t := 1 - (float64(j)+pixelSample.Y)/height

	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	origin := c.origin
	if c.lensRadius > 0 {
		r := math.Sqrt(lensSample.X)
		theta := 2 * math.Pi * lensSample.Y
		lensOffset := c.u.Multiply(r * math.Cos(theta) * c.lensRadius).
			Add(c.v.Multiply(r * math.Sin(theta) * c.lensRadius))
		origin = origin.Add(lensOffset)
	}

	return core.NewRay(origin, target.Subtract(origin))
}

package lights

import (
	"math"

	"github.com/dfoxwell/lightdist/pkg/core"
)

// PointSpotLight represents a directional point light with cone angle and falloff,
// analogous to PBRT's SpotLight but with a delta (zero-area) position.
type PointSpotLight struct {
	position        core.Vec3 // Light position in world space
	direction       core.Vec3 // Normalized direction vector (from -> to)
	emission        core.Vec3 // Light intensity/color
	cosTotalWidth   float64   // Cosine of total cone angle (outer edge)
	cosFalloffStart float64   // Cosine of falloff start angle (inner cone)
}

// NewPointSpotLight creates a new point spot light
// from: light position
// to: point the light is aimed at
// emission: light intensity/color
// coneAngleDegrees: total cone angle in degrees
// coneDeltaAngleDegrees: falloff transition angle in degrees
func NewPointSpotLight(from, to, emission core.Vec3, coneAngleDegrees, coneDeltaAngleDegrees float64) *PointSpotLight {
	direction := to.Subtract(from).Normalize()

	totalWidthRadians := coneAngleDegrees * math.Pi / 180.0
	falloffStartRadians := (coneAngleDegrees - coneDeltaAngleDegrees) * math.Pi / 180.0

	return &PointSpotLight{
		position:        from,
		direction:       direction,
		emission:        emission,
		cosTotalWidth:   math.Cos(totalWidthRadians),
		cosFalloffStart: math.Cos(falloffStartRadians),
	}
}

func (psl *PointSpotLight) Type() LightType {
	return LightTypePoint
}

// Sample implements the Light interface - a point light's position is a delta distribution,
// so every sample returns the same point with the spot falloff baked into the emission.
func (psl *PointSpotLight) Sample(point core.Vec3, normal core.Vec3, sample core.Vec2) LightSample {
	toLightVec := psl.position.Subtract(point)
	distance := toLightVec.Length()

	if distance == 0 {
		return LightSample{
			Point:     psl.position,
			Normal:    core.NewVec3(0, 1, 0),
			Direction: core.NewVec3(0, 1, 0),
			Distance:  0,
			Emission:  core.NewVec3(0, 0, 0),
			PDF:       1.0,
		}
	}

	toLight := toLightVec.Normalize()
	lightToPoint := toLight.Multiply(-1)

	cosAngle := psl.direction.Dot(lightToPoint)
	spotAttenuation := psl.falloff(cosAngle)

	emission := psl.emission.Multiply(spotAttenuation / (distance * distance))

	return LightSample{
		Point:     psl.position,
		Normal:    toLight,
		Direction: toLight,
		Distance:  distance,
		Emission:  emission,
		PDF:       1.0,
	}
}

// PDF implements the Light interface. A point light's position is a delta function,
// so PDF is 1 for the exact direction toward the light and 0 otherwise.
func (psl *PointSpotLight) PDF(point, normal, direction core.Vec3) float64 {
	toLightVec := psl.position.Subtract(point)
	if toLightVec.Length() == 0 {
		return 0.0
	}

	toLight := toLightVec.Normalize()
	if direction.Dot(toLight) > 0.999 {
		return 1.0
	}

	return 0.0
}

// SampleEmission implements the Light interface - emission is sampled from the light's
// position, within the spot cone.
func (psl *PointSpotLight) SampleEmission(samplePoint core.Vec2, sampleDirection core.Vec2) EmissionSample {
	emissionDir := core.SampleCone(psl.direction, psl.cosTotalWidth, sampleDirection)

	cosTheta := emissionDir.Dot(psl.direction)
	spotAttenuation := psl.falloff(cosTheta)

	conePDF := UniformConePDF(psl.cosTotalWidth)
	emission := psl.emission.Multiply(spotAttenuation)

	return EmissionSample{
		Point:        psl.position,
		Normal:       psl.direction,
		Direction:    emissionDir,
		Emission:     emission,
		AreaPDF:      1.0, // delta position, area measure degenerates to 1
		DirectionPDF: conePDF,
	}
}

// EmissionPDF implements the Light interface - returns the area PDF for a delta light,
// which is always 1 when restricted to the cone.
func (psl *PointSpotLight) EmissionPDF(point core.Vec3, direction core.Vec3) float64 {
	if point.Subtract(psl.position).Length() > 1e-6 {
		return 0.0
	}

	cosAngleToSpot := direction.Dot(psl.direction)
	if cosAngleToSpot < psl.cosTotalWidth {
		return 0.0
	}

	return 1.0
}

// Emit implements the Light interface - point lights have zero area, so they never
// contribute emission to a ray that happens to pass through their position.
func (psl *PointSpotLight) Emit(ray core.Ray) core.Vec3 {
	return core.Vec3{X: 0, Y: 0, Z: 0}
}

// falloff calculates the spot light falloff based on the cosine of the angle
// between the light direction and the direction to the shading point.
func (psl *PointSpotLight) falloff(cosAngle float64) float64 {
	if cosAngle < psl.cosTotalWidth {
		return 0.0
	}

	if cosAngle >= psl.cosFalloffStart {
		return 1.0
	}

	delta := (cosAngle - psl.cosTotalWidth) / (psl.cosFalloffStart - psl.cosTotalWidth)
	return delta * delta * delta * delta
}

// GetIntensityAt returns the light intensity at a given point, useful for debugging
// and visualization.
func (psl *PointSpotLight) GetIntensityAt(point core.Vec3) core.Vec3 {
	toLightVec := psl.position.Subtract(point)
	distance := toLightVec.Length()

	if distance == 0 {
		return core.NewVec3(0, 0, 0)
	}

	toLight := toLightVec.Normalize()
	lightToPoint := toLight.Multiply(-1)

	cosAngle := psl.direction.Dot(lightToPoint)
	spotAttenuation := psl.falloff(cosAngle)

	return psl.emission.Multiply(spotAttenuation / (distance * distance))
}

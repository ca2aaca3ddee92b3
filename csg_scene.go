package main

import (
	"github.com/ahartley/photontracer/pkg/camera"
	"github.com/ahartley/photontracer/pkg/config"
	"github.com/ahartley/photontracer/pkg/geom"
	"github.com/ahartley/photontracer/pkg/geometry"
	"github.com/ahartley/photontracer/pkg/light"
	"github.com/ahartley/photontracer/pkg/material"
	"github.com/ahartley/photontracer/pkg/scene"
)

// newCSGScene subtracts one sphere from another, the CSG kernel's
// canonical demonstration: a crescent-shaped solid carved out of the
// first sphere by the second.
func newCSGScene(cfg config.Config) (*scene.Scene, *camera.Camera) {
	s := scene.New(cfg.Camera.RaytraceRecurse)

	steel := s.AddMaterial(material.NewPhong(
		geom.NewColour(0.05, 0.05, 0.08, 1),
		geom.NewColour(0.2, 0.25, 0.35, 1),
		geom.NewColour(0.6, 0.6, 0.6, 1),
		64,
	))

	a := geometry.NewSphere(geom.NewVertex(-5, 4, 6, 1), 3, steel)
	b := geometry.NewSphere(geom.NewVertex(-4, 4, 10, 1), 3, steel)
	s.AddObject(geometry.NewCSG(geometry.Difference, a, b, steel))

	s.AddLight(light.NewDirectional(geom.NewVec3(-0.3, -1, 0.3), geom.White))

	position := geom.NewVertex(-4, 4, 5, 1)
	lookAt := position.Vec3().Add(geom.NewVec3(0, 0, 1)).AsVertex(1)
	cam := camera.NewFullCamera(cfg.Framebuffer.Width, cfg.Framebuffer.Height, 0.6, position, lookAt, geom.NewVec3(0, 1, 0))
	return s, cam
}

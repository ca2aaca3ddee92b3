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

// newDefaultScene builds a single red Phong sphere lit by one directional
// light, looking straight down +Z from the origin.
func newDefaultScene(cfg config.Config) (*scene.Scene, *camera.Camera) {
	s := scene.New(cfg.Camera.RaytraceRecurse)

	red := s.AddMaterial(material.NewPhong(
		geom.NewColour(0.1, 0.1, 0.1, 1),
		geom.NewColour(0.6, 0, 0, 1),
		geom.NewColour(0.3, 0.3, 0.3, 1),
		32,
	))
	s.AddObject(geometry.NewSphere(geom.NewVertex(0, 0, 5, 1), 1, red))
	s.AddLight(light.NewDirectional(geom.NewVec3(0, -1, 0), geom.White))

	cam := camera.NewSimpleCamera(cfg.Framebuffer.Width, cfg.Framebuffer.Height, 0.5)
	return s, cam
}

// newAmbientOcclusionScene rests a unit sphere on an infinite floor plane,
// both ambient-occluded, demonstrating the darkening near the contact point.
func newAmbientOcclusionScene(cfg config.Config) (*scene.Scene, *camera.Camera) {
	s := scene.New(cfg.Camera.RaytraceRecurse)

	ao := s.AddMaterial(material.NewAmbientOcclusion(geom.NewColour(0.8, 0.8, 0.8, 1), 64, 0.1))
	s.AddObject(geometry.NewPlane(0, 1, 0, 0, ao))
	s.AddObject(geometry.NewSphere(geom.NewVertex(0, 1, 5, 1), 1, ao))

	cam := camera.NewFullCamera(cfg.Framebuffer.Width, cfg.Framebuffer.Height, 0.7,
		geom.NewVertex(0, 3, -2, 1), geom.NewVertex(0, 0, 5, 1), geom.NewVec3(0, 1, 0))
	return s, cam
}

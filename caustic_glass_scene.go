package main

import (
	"math/rand"

	"github.com/ahartley/photontracer/pkg/camera"
	"github.com/ahartley/photontracer/pkg/config"
	"github.com/ahartley/photontracer/pkg/geom"
	"github.com/ahartley/photontracer/pkg/geometry"
	"github.com/ahartley/photontracer/pkg/light"
	"github.com/ahartley/photontracer/pkg/material"
	"github.com/ahartley/photontracer/pkg/photon"
)

// newCausticGlassScene builds a glass sphere over a diffuse floor lit by a
// single overhead point light, the canonical photon-mapped caustic
// demonstration: the global map carries the floor's soft indirect bounce,
// the caustic map carries the bright focused ring the glass throws beneath
// it.
func newCausticGlassScene(cfg config.Config, seed int64) (*photon.Scene, *camera.Camera) {
	ps := photon.New(cfg.Camera.RaytraceRecurse)
	ps.NumPhotons = cfg.PhotonMapping.NumPhotons
	ps.PhotonRecurse = cfg.PhotonMapping.PhotonRecurse
	ps.PhotonSearchRadius = cfg.PhotonMapping.PhotonSearchRadius
	ps.PhotonSearchCount = cfg.PhotonMapping.PhotonSearchCount
	ps.RecurseApproximateThreshold = cfg.PhotonMapping.RecurseApproximateThreshold
	ps.UseShadowEstimation = cfg.PhotonMapping.UseShadowEstimation

	floor := ps.AddMaterial(material.NewPhong(
		geom.NewColour(0.05, 0.05, 0.05, 1),
		geom.NewColour(0.5, 0.5, 0.5, 1),
		geom.NewColour(0.1, 0.1, 0.1, 1),
		8,
	))
	glass := ps.AddMaterial(material.NewGlobal(geom.White, geom.White, 1.52))

	ps.AddObject(geometry.NewPlane(0, 1, 0, 0, floor))
	ps.AddObject(geometry.NewSphere(geom.NewVertex(0, 3, 8, 1), 1.5, glass))
	ps.AddLight(light.NewPoint(geom.NewVertex(0, 8, 8, 1), geom.NewColour(400, 400, 400, 1)))

	ps.Setup(rand.New(rand.NewSource(seed)))

	cam := camera.NewSamplingCamera(cfg.Framebuffer.Width, cfg.Framebuffer.Height, 0.8,
		geom.NewVertex(0, 6, -2, 1), geom.NewVertex(0, 0, 8, 1), geom.NewVec3(0, 1, 0),
		cfg.Camera.NumCameraRaySamples)
	return ps, cam
}

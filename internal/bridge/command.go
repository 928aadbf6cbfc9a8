package bridge

import (
	"github.com/dynfpv/extension/internal/host"
	"github.com/go-gl/mathgl/mgl32"
)

// Command ops understood by the shim.
const (
	OpCreateCamera   = "createCam"
	OpDestroyCamera  = "destroyCam"
	OpRenderScript   = "render"
	OpAttachVehicle  = "attachVeh"
	OpAttachPedBone  = "attachPed"
	OpRotation       = "rot"
	OpFOV            = "fov"
	OpNearClip       = "nearClip"
	OpDoF            = "dof"
	OpFirstPerson    = "fpFrame"
	OpMinimapLock    = "minimapLock"
	OpMinimapUnlock  = "minimapUnlock"
	OpParticleInside = "ptfxInside"
	OpSetProp        = "setProp"
	OpClearProp      = "clearProp"
	OpBoneDraw       = "boneDraw"
	OpBoneDrawRemove = "boneDrawRemove"
)

// Command is one call the shim must make on the game this tick. Camera
// handles are allocated here; the shim maps them to real cameras.
type Command struct {
	Op      string      `json:"op"`
	Cam     host.Handle `json:"cam,omitempty"`
	Entity  host.Handle `json:"entity,omitempty"`
	Bone    int         `json:"bone,omitempty"`
	Vec     *mgl32.Vec3 `json:"vec,omitempty"`
	Value   float32     `json:"value,omitempty"`
	Flag    bool        `json:"flag,omitempty"`
	Planes  *[4]float32 `json:"planes,omitempty"`
	Index   int         `json:"index,omitempty"`
	Texture int         `json:"texture,omitempty"`
}

func vec(v mgl32.Vec3) *mgl32.Vec3 { return &v }

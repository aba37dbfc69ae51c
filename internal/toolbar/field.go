package toolbar

import "github.com/san-kum/particlepanic/internal/world"

// Field is the world parameter the numeric entry writes to.
type Field uint8

const (
	FieldResolution Field = iota
	FieldResolution3D
	FieldBrush
	FieldPerDraw
	FieldGravity
	numFields
)

var fieldParams = [numFields]string{
	FieldResolution:   world.ParamResolution,
	FieldResolution3D: world.ParamResolution3D,
	FieldBrush:        world.ParamBrush,
	FieldPerDraw:      world.ParamPerDraw,
	FieldGravity:      world.ParamGravity,
}

var fieldLabels = [numFields]string{
	FieldResolution:   "resolution",
	FieldResolution3D: "res 3d",
	FieldBrush:        "brush",
	FieldPerDraw:      "per draw",
	FieldGravity:      "gravity",
}

func (f Field) Param() string  { return fieldParams[f] }
func (f Field) String() string { return fieldLabels[f] }

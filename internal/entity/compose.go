package entity

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// Rect is a placement rectangle in pixel coordinates of the profile picture.
type Rect struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

func (r Rect) Dx() int { return r.MaxX - r.MinX }
func (r Rect) Dy() int { return r.MaxY - r.MinY }

func (r Rect) Min() image.Point { return image.Pt(r.MinX, r.MinY) }

func (r Rect) Image() image.Rectangle {
	return image.Rect(r.MinX, r.MinY, r.MaxX, r.MaxY)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// Placement selects where in the profile picture the icon goes.
type Placement string

const (
	// PlacementPadded is the bottom-right nonant shrunk by a 10% margin on every side.
	PlacementPadded Placement = "padded"
	// PlacementSimple starts at two thirds of each side and runs to the far edges.
	PlacementSimple Placement = "simple"
)

// Rect returns the target rectangle for a profile picture of the given size.
func (p Placement) Rect(width, height int) Rect {
	switch p {
	case PlacementSimple:
		return Rect{MinX: 2 * width / 3, MinY: 2 * height / 3, MaxX: width, MaxY: height}
	default:
		return Rect{MinX: 21 * width / 30, MinY: 21 * height / 30, MaxX: 29 * width / 30, MaxY: 29 * height / 30}
	}
}

func ParsePlacement(s string) (Placement, error) {
	switch p := Placement(strings.ToLower(strings.TrimSpace(s))); p {
	case PlacementPadded, PlacementSimple:
		return p, nil
	case "":
		return PlacementPadded, nil
	default:
		return "", fmt.Errorf("%w: placement %q (want padded or simple)", ErrInvalidConfig, s)
	}
}

// Naming selects how output files are named.
type Naming string

const (
	// NamingPrefixed names outputs {profile_stem}_{icon_stem}.png.
	NamingPrefixed Naming = "prefixed"
	// NamingIcon names outputs {icon_stem}.png.
	NamingIcon Naming = "icon"
)

func ParseNaming(s string) (Naming, error) {
	switch n := Naming(strings.ToLower(strings.TrimSpace(s))); n {
	case NamingPrefixed, NamingIcon:
		return n, nil
	case "":
		return NamingPrefixed, nil
	default:
		return "", fmt.Errorf("%w: naming %q (want prefixed or icon)", ErrInvalidConfig, s)
	}
}

// OutputName derives the PNG file name for one icon.
func (n Naming) OutputName(profilePath, iconPath string) string {
	if n == NamingIcon {
		return Stem(iconPath) + ".png"
	}
	return Stem(profilePath) + "_" + Stem(iconPath) + ".png"
}

// Stem returns the base name of path without its extension.
// A leading dot does not start an extension (".face" stays ".face").
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, ext(base))
}

// DefaultOutDir is the profile picture path with its extension removed.
func DefaultOutDir(profilePath string) string {
	return strings.TrimSuffix(profilePath, ext(filepath.Base(profilePath)))
}

func ext(base string) string {
	e := filepath.Ext(base)
	if e == base {
		return ""
	}
	return e
}

// Job is one compositor run.
type Job struct {
	ProfilePath string   `json:"profile_path"`
	OutDir      string   `json:"out_dir"`
	IconPaths   []string `json:"icon_paths"`
}

// Result describes one written output.
type Result struct {
	Icon   string `json:"icon"`
	Output string `json:"output"`
	Placed Rect   `json:"placed"`
}

/*
Package chromafix adjusts color palettes so that colors which are distinct to
viewers with normal vision stay distinct to viewers with protanopia or
deuteranopia, while changing them as little as possible.

The work is done in a perceptual color space (see the perceptual package)
where a dichromat's view of every color is simulated (cvd package) and the
loss of contrast between every pair of colors is measured (distance
package). A sequence of local searches (search package) then moves the
palette to reduce that loss. The package level functions Run, Optimize and
OptimizeMany are the entry points; all other exported functions are helpers
for reading palettes and previewing the results.
*/
package chromafix

import "fmt"

type ChromafixVersion struct {
	Major, Minor, Patch uint
}

func (v ChromafixVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v ChromafixVersion) Equal(o ChromafixVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

func (v ChromafixVersion) After(o ChromafixVersion) bool {
	switch {
	case v.Major != o.Major:
		return v.Major > o.Major
	case v.Minor != o.Minor:
		return v.Minor > o.Minor
	}
	return v.Patch > o.Patch
}

func (v ChromafixVersion) Before(o ChromafixVersion) bool {
	return !v.Equal(o) && !v.After(o)
}

var Version = ChromafixVersion{0, 3, 0}

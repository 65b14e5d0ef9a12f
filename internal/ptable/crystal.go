package ptable

import "fmt"

// InvalidSpaceGroupError reports a space group number outside the
// international range 1-230.
type InvalidSpaceGroupError struct {
	SpaceGroup int
}

func (e *InvalidSpaceGroupError) Error() string {
	return fmt.Sprintf("ptable: invalid space group %d, must be in range 1-230", e.SpaceGroup)
}

// CrystalSystem returns the crystal system for an international space
// group number.
func CrystalSystem(spg int) (string, error) {
	if spg < 1 || spg > 230 {
		return "", &InvalidSpaceGroupError{SpaceGroup: spg}
	}
	switch {
	case spg < 3:
		return "triclinic", nil
	case spg < 16:
		return "monoclinic", nil
	case spg < 75:
		return "orthorhombic", nil
	case spg < 143:
		return "tetragonal", nil
	case spg < 168:
		return "trigonal", nil
	case spg < 195:
		return "hexagonal", nil
	default:
		return "cubic", nil
	}
}

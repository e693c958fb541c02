package types

// CalculateQuorum returns the minimum number of guardian signatures needed
// for a set of numGuardians. Each division truncates in this exact order so
// the result stays bit compatible with every deployed verifier.
func CalculateQuorum(numGuardians int) int {
	if numGuardians <= 0 {
		return 0
	}

	return ((numGuardians*10/3)*2)/10 + 1
}

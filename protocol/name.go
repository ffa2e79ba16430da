package protocol

// ValidateTubeName checks a tube name against the protocol constraints:
// 1-200 bytes of ASCII letters, digits, or -+/;.$_() characters, not
// beginning with a hyphen. Returns an InvalidNameError describing the
// violation.
func ValidateTubeName(name string) error {
	if len(name) == 0 {
		return &InvalidNameError{Name: name, Reason: "name is empty"}
	}
	if len(name) > MaxTubeNameLength {
		return &InvalidNameError{Name: name, Reason: "name exceeds 200 bytes"}
	}
	if name[0] == '-' {
		return &InvalidNameError{Name: name, Reason: "name begins with a hyphen"}
	}

	for i := 0; i < len(name); i++ {
		if !isTubeNameByte(name[i]) {
			return &InvalidNameError{Name: name, Reason: "name contains an invalid character"}
		}
	}

	return nil
}

func isTubeNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	}

	switch b {
	case '-', '+', '/', ';', '.', '$', '_', '(', ')':
		return true
	}
	return false
}

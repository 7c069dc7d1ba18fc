package fieldproj

// ExtractKey recovers the quoted key owning the colon at offset colonPos:
// it skips ASCII whitespace backwards, expects a closing '"', then walks
// back to the matching opening '"'. It returns the raw key bytes as a
// string and true, or false if no well-formed quoted key precedes the
// colon.
//
// A '"' is escaped iff the run of backslashes immediately before it has
// odd length; a single-backslash peek would misread `\\"`.
func ExtractKey(buf []byte, colonPos int) (string, bool) {
	i := colonPos - 1
	for i >= 0 && isJSONSpace(buf[i]) {
		i--
	}
	if i < 0 || buf[i] != '"' {
		return "", false
	}
	end := i
	i--

	for i >= 0 {
		if buf[i] != '"' {
			i--
			continue
		}
		run := 0
		for j := i - 1; j >= 0 && buf[j] == '\\'; j-- {
			run++
		}
		if run%2 == 0 {
			return string(buf[i+1 : end]), true
		}
		i--
	}
	return "", false
}

func isJSONSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

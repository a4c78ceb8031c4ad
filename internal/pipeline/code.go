package pipeline

import (
	"fmt"
	"strings"
)

// FormatItemCode rewrites a raw numeric item code as NNNN.NN.NNN-NN by
// zero-padding to 11 digits and inserting separators at fixed offsets.
// Codes longer than 11 digits pass through unpadded and produce a longer,
// non-canonical result; the source format does not define this case and
// callers get the string verbatim.
func FormatItemCode(code string) string {
	s := code
	if len(s) < 11 {
		s = strings.Repeat("0", 11-len(s)) + s
	}
	return fmt.Sprintf("%s.%s.%s-%s", s[:4], s[4:6], s[6:9], s[9:])
}

package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

var datedNameRe = regexp.MustCompile(`(20\d\d)(\d\d)(\d\d)-(\d\d)(\d\d)(\d\d)-(\d+)`)

// Dated is a file name previously produced by Compute.
type Dated struct {
	Time    time.Time
	Stem    string
	Counter int
}

// ParseDated extracts the date and counter from a base name such as
// "20240401-053642-002.jpg". ok is false for names without a valid date.
func ParseDated(name string) (Dated, bool) {
	m := datedNameRe.FindStringSubmatch(name)
	if m == nil {
		return Dated{}, false
	}
	stem := m[1] + m[2] + m[3] + "-" + m[4] + m[5] + m[6]
	ts, err := time.Parse(DateLayout, stem)
	if err != nil {
		return Dated{}, false
	}
	counter, err := strconv.Atoi(m[7])
	if err != nil {
		return Dated{}, false
	}
	return Dated{Time: ts, Stem: stem, Counter: counter}, true
}

// ArchiveDir returns root/Pictures_YYYY/MM_YYYY for d.
func ArchiveDir(root string, d Dated) string {
	year := d.Time.Format("2006")
	return filepath.Join(root, fmt.Sprintf("Pictures_%s", year), fmt.Sprintf("%s_%s", d.Time.Format("01"), year))
}

package app

import "fmt"

// File statuses reported in Summary.Files.
const (
	StatusRenamed   = "renamed"
	StatusUnchanged = "unchanged"
	StatusSkipped   = "skipped"
	StatusNoDate    = "no_date"
	StatusMetaError = "meta_error"
	StatusFailed    = "failed"
)

// FileResult is the outcome for one file.
type FileResult struct {
	Path        string `json:"path"`
	Destination string `json:"destination,omitempty"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
}

// Summary aggregates a batch run.
type Summary struct {
	DryRun    bool         `json:"dryRun"`
	Renamed   int          `json:"renamed"`
	Unchanged int          `json:"unchanged"`
	Skipped   int          `json:"skipped"`
	NoDate    int          `json:"noDate"`
	MetaError int          `json:"metaErrors"`
	Failed    int          `json:"failed"`
	Files     []FileResult `json:"files"`
}

func (s *Summary) add(r FileResult) {
	switch r.Status {
	case StatusRenamed:
		s.Renamed++
	case StatusUnchanged:
		s.Unchanged++
	case StatusSkipped:
		s.Skipped++
	case StatusNoDate:
		s.NoDate++
	case StatusMetaError:
		s.MetaError++
	case StatusFailed:
		s.Failed++
	}
	s.Files = append(s.Files, r)
}

// Result returns the recorded outcome for path.
func (s *Summary) Result(path string) (FileResult, bool) {
	for _, r := range s.Files {
		if r.Path == path {
			return r, true
		}
	}
	return FileResult{}, false
}

func (s *Summary) String() string {
	prefix := "Finished."
	if s.DryRun {
		prefix = "Finished (dry run)."
	}
	return fmt.Sprintf("%s renamed=%d unchanged=%d skipped=%d no_date=%d meta_errors=%d failed=%d",
		prefix, s.Renamed, s.Unchanged, s.Skipped, s.NoDate, s.MetaError, s.Failed)
}

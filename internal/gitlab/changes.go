package gitlab

import "strings"

// ChangesSummary is a derived overview of a merge request changes response
type ChangesSummary struct {
	FilesAdded    int           `json:"files_added"`
	FilesDeleted  int           `json:"files_deleted"`
	FilesRenamed  int           `json:"files_renamed"`
	FilesModified int           `json:"files_modified"`
	TotalFiles    int           `json:"total_files"`
	Files         []FileSummary `json:"files"`
}

// FileSummary describes one changed file with a truncated diff preview
type FileSummary struct {
	OldPath     string `json:"old_path"`
	NewPath     string `json:"new_path"`
	Status      string `json:"status"`
	DiffPreview string `json:"diff_preview"`
}

// diffPreviewLines is how many diff lines each file summary keeps
const diffPreviewLines = 3

// diffTruncationMarker is appended when a diff has more lines than the preview shows
const diffTruncationMarker = "..."

// SummarizeChanges derives file counts and per-file diff previews from a
// changes response. Each file is counted once: new_file wins over deleted_file,
// which wins over renamed_file; anything else counts as modified.
func SummarizeChanges(changes *MergeRequestChanges) *ChangesSummary {
	summary := &ChangesSummary{
		TotalFiles: len(changes.Changes),
		Files:      make([]FileSummary, 0, len(changes.Changes)),
	}

	for _, change := range changes.Changes {
		var status string
		switch {
		case change.NewFile:
			status = "added"
			summary.FilesAdded++
		case change.DeletedFile:
			status = "deleted"
			summary.FilesDeleted++
		case change.RenamedFile:
			status = "renamed"
			summary.FilesRenamed++
		default:
			status = "modified"
			summary.FilesModified++
		}

		summary.Files = append(summary.Files, FileSummary{
			OldPath:     change.OldPath,
			NewPath:     change.NewPath,
			Status:      status,
			DiffPreview: previewDiff(change.Diff),
		})
	}

	return summary
}

// previewDiff truncates a diff to its first few lines, marking the cut
func previewDiff(diff string) string {
	if diff == "" {
		return ""
	}

	lines := strings.Split(diff, "\n")
	if len(lines) <= diffPreviewLines {
		return diff
	}

	preview := strings.Join(lines[:diffPreviewLines], "\n")
	return preview + "\n" + diffTruncationMarker
}

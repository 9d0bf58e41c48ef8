package models

// DocumentUpload is an accepted attachment staged on disk. StagedPath holds
// the blob until the intake transaction commits; FinalPath is the path the
// database row references and the blob is renamed to after commit.
type DocumentUpload struct {
	FileName    string
	ContentType string
	Size        int64
	StagedPath  string
	FinalPath   string
}

// StoredDocument is the project_documents metadata backing a file download
type StoredDocument struct {
	ID       int64
	FileName string
	FilePath string
	FileType string
}

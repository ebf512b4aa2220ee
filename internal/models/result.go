package models

import "fmt"

// AddResult is the outcome of adding a document. Failures are carried in the
// result rather than raised: ingestion is a batch operation and one bad file
// must not abort the batch.
type AddResult struct {
	Success  bool   `json:"success"`
	FileName string `json:"file_name,omitempty"`
	Chunks   int    `json:"chunks,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// AddOK returns a successful AddResult for fileName with the given chunk count.
func AddOK(fileName string, chunks int) *AddResult {
	return &AddResult{
		Success:  true,
		FileName: fileName,
		Chunks:   chunks,
		Message:  fmt.Sprintf("Successfully added %s with %d chunks", fileName, chunks),
	}
}

// AddFailed returns a failed AddResult carrying the error message.
func AddFailed(err error) *AddResult {
	return &AddResult{Success: false, Error: err.Error()}
}

// DeleteResult is the outcome of deleting a document.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SearchResult is a single retrieved chunk. Distance is index-defined;
// callers may only rely on ascending order meaning decreasing relevance.
type SearchResult struct {
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
	Distance float64                `json:"distance"`
}

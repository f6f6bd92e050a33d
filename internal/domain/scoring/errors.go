package scoring

import "errors"

// Sentinel kinds for scorer errors.
var (
	ErrArtifactMissing = errors.New("scorer artifact missing")
	ErrArtifactInvalid = errors.New("scorer artifact invalid")
)

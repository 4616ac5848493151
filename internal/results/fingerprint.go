package results

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"quizdoc/internal/question"
)

// DocumentKey fingerprints a parsed question set. Two uploads that parse to
// the same questions share a key regardless of the source file name.
func DocumentKey(questions []question.Question) (string, error) {
	data, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("encode questions: %w", err)
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// Package tokencount counts and truncates text in model tokens.
//
// Embedding models accept a bounded context; resumes and job posts are cut
// to the limit before they are sent. Counting uses the cl100k_base BPE,
// which is close enough to the WordPiece vocabularies of common embedding
// models to keep inputs under their limits.
package tokencount

import (
	"fmt"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const encodingName = "cl100k_base"

func init() {
	// Use the embedded BPE ranks; never download at runtime.
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// Counter provides thread-safe token counting.
type Counter struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
	err  error
}

// NewCounter creates a new token counter instance.
func NewCounter() *Counter { return &Counter{} }

// DefaultCounter is a global token counter instance.
var DefaultCounter = NewCounter()

func (c *Counter) encoding() (*tiktoken.Tiktoken, error) {
	c.once.Do(func() {
		c.enc, c.err = tiktoken.GetEncoding(encodingName)
		if c.err != nil {
			c.err = fmt.Errorf("op=tokencount.encoding: %w", c.err)
		}
	})
	return c.enc, c.err
}

// CountTokens counts the number of tokens in text.
func (c *Counter) CountTokens(text string) (int, error) {
	enc, err := c.encoding()
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// Truncate cuts text to at most maxTokens tokens. maxTokens <= 0 disables
// truncation. The second result reports whether text was shortened.
func (c *Counter) Truncate(text string, maxTokens int) (string, bool, error) {
	if maxTokens <= 0 || text == "" {
		return text, false, nil
	}
	enc, err := c.encoding()
	if err != nil {
		return "", false, err
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text, false, nil
	}
	// A cut may split a multi-byte rune.
	out := strings.ToValidUTF8(enc.Decode(tokens[:maxTokens]), "")
	return out, true, nil
}
